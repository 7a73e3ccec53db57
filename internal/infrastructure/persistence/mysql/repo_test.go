package mysql

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/booksapi/internal/domain/author"
	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
)

// newTestDB 创建SQLite内存数据库
func newTestDB(t *testing.T, migrateMode string) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			Path:        ":memory:",
			MigrateMode: migrateMode,
		},
	}
	db, err := NewDB(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestMigrate(t *testing.T) {
	for _, mode := range []string{config.MigrateAuto, config.MigrateSQL} {
		t.Run(mode, func(t *testing.T) {
			db := newTestDB(t, mode)

			assert.True(t, db.Migrator().HasTable("authors"))
			assert.True(t, db.Migrator().HasTable("books"))

			// 重复执行是安全的
			require.NoError(t, Migrate(db, config.DatabaseConfig{Driver: config.DriverSQLite, MigrateMode: mode}))
		})
	}

	t.Run(config.MigrateNone, func(t *testing.T) {
		db := newTestDB(t, config.MigrateNone)
		assert.False(t, db.Migrator().HasTable("authors"))
	})
}

func TestAuthorRepository(t *testing.T) {
	db := newTestDB(t, config.MigrateAuto)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	seed := []*author.Author{
		{ID: 100, Name: "Abigail Rose", Age: intPtr(80)},
		{Name: "John Smith", Age: intPtr(70)},
		{Name: "Anna Adams", Age: intPtr(30)},
		{Name: "Nobody Knows"},
	}
	for _, a := range seed {
		require.NoError(t, repo.Create(ctx, a))
	}

	t.Run("Create忽略传入ID并回填", func(t *testing.T) {
		assert.Equal(t, int64(1), seed[0].ID)
		assert.Equal(t, int64(4), seed[3].ID)
	})

	t.Run("FindByID", func(t *testing.T) {
		got, err := repo.FindByID(ctx, seed[1].ID)
		require.NoError(t, err)
		assert.Equal(t, seed[1], got)

		_, err = repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("FindAll按ID排序", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)
		for i := range all {
			assert.Equal(t, int64(i+1), all[i].ID)
		}
		assert.Nil(t, all[3].Age)
	})

	t.Run("谓词查询", func(t *testing.T) {
		byName, err := repo.FindByName(ctx, "Anna Adams")
		require.NoError(t, err)
		assert.Equal(t, 30, *byName.Age)

		_, err = repo.FindByName(ctx, "anna adams")
		assert.ErrorIs(t, err, author.ErrAuthorNotFound, "精确匹配")

		younger, err := repo.FindByAgeLessThan(ctx, 75)
		require.NoError(t, err)
		require.Len(t, younger, 2)
		assert.Equal(t, "John Smith", younger[0].Name)
		assert.Equal(t, "Anna Adams", younger[1].Name)

		older, err := repo.FindByAgeGreaterThan(ctx, 30)
		require.NoError(t, err)
		assert.Len(t, older, 2)
	})

	t.Run("Save覆盖已有作者", func(t *testing.T) {
		updated := &author.Author{ID: seed[2].ID, Name: "Anna B. Adams"}
		require.NoError(t, repo.Save(ctx, updated))

		got, err := repo.FindByID(ctx, seed[2].ID)
		require.NoError(t, err)
		assert.Equal(t, "Anna B. Adams", got.Name)
		assert.Nil(t, got.Age, "未提供的age被清空")
	})

	t.Run("Save插入未知ID", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &author.Author{ID: 50, Name: "Explicit"}))

		exists, err := repo.ExistsByID(ctx, 50)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("DeleteByID幂等", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, 50))
		require.NoError(t, repo.DeleteByID(ctx, 50))

		exists, err := repo.ExistsByID(ctx, 50)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestBookRepository(t *testing.T) {
	db := newTestDB(t, config.MigrateSQL)
	authors := NewAuthorRepository(db)
	repo := NewBookRepository(db)
	ctx := context.Background()

	a := author.NewAuthor("John Smith", intPtr(70))
	require.NoError(t, authors.Create(ctx, a))

	t.Run("InsertIfAbsent只有第一次返回true", func(t *testing.T) {
		created, err := repo.InsertIfAbsent(ctx, "TEST-123-123")
		require.NoError(t, err)
		assert.True(t, created)

		created, err = repo.InsertIfAbsent(ctx, "TEST-123-123")
		require.NoError(t, err)
		assert.False(t, created)

		got, err := repo.FindByISBN(ctx, "TEST-123-123")
		require.NoError(t, err)
		assert.Nil(t, got.Title)
		assert.Nil(t, got.Author)
	})

	t.Run("Save写入title和作者", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, book.NewBook("TEST-123-123", strPtr("Go in Action"), a)))

		got, err := repo.FindByISBN(ctx, "TEST-123-123")
		require.NoError(t, err)
		assert.Equal(t, "Go in Action", *got.Title)
		require.NotNil(t, got.Author)
		assert.Equal(t, a.ID, got.Author.ID)
		assert.Equal(t, "John Smith", got.Author.Name)
	})

	t.Run("Save清空字段", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, book.NewBook("TEST-123-123", nil, nil)))

		got, err := repo.FindByISBN(ctx, "TEST-123-123")
		require.NoError(t, err)
		assert.Nil(t, got.Title)
		assert.Nil(t, got.Author)
	})

	t.Run("删除作者后图书保留", func(t *testing.T) {
		_, err := repo.InsertIfAbsent(ctx, "TEST-456-456")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, book.NewBook("TEST-456-456", strPtr("Orphan"), a)))

		require.NoError(t, authors.DeleteByID(ctx, a.ID))

		got, err := repo.FindByISBN(ctx, "TEST-456-456")
		require.NoError(t, err)
		assert.Equal(t, "Orphan", *got.Title)
		assert.Nil(t, got.Author)
	})

	t.Run("FindByISBN不存在", func(t *testing.T) {
		_, err := repo.FindByISBN(ctx, "NEVER")
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("DeleteByISBN幂等", func(t *testing.T) {
		require.NoError(t, repo.DeleteByISBN(ctx, "TEST-456-456"))
		require.NoError(t, repo.DeleteByISBN(ctx, "TEST-456-456"))

		exists, err := repo.ExistsByISBN(ctx, "TEST-456-456")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestBookRepository_List(t *testing.T) {
	db := newTestDB(t, config.MigrateAuto)
	repo := NewBookRepository(db)
	ctx := context.Background()

	// 乱序插入,验证按ISBN排序
	for _, isbn := range []string{"ISBN-05", "ISBN-01", "ISBN-04", "ISBN-02", "ISBN-03"} {
		_, err := repo.InsertIfAbsent(ctx, isbn)
		require.NoError(t, err)
	}

	page0, total, err := repo.List(ctx, book.ListParams{Page: 0, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page0, 2)
	assert.Equal(t, "ISBN-01", page0[0].ISBN)
	assert.Equal(t, "ISBN-02", page0[1].ISBN)

	page2, _, err := repo.List(ctx, book.ListParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "ISBN-05", page2[0].ISBN)

	beyond, total, err := repo.List(ctx, book.ListParams{Page: 10, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.Equal(t, int64(5), total)
}

func TestTxManager(t *testing.T) {
	db := newTestDB(t, config.MigrateAuto)
	txManager := NewTxManager(db)
	repo := NewBookRepository(db)
	ctx := context.Background()

	t.Run("返回错误时回滚", func(t *testing.T) {
		boom := errors.New("boom")
		err := txManager.Transaction(ctx, func(ctx context.Context) error {
			if _, err := repo.InsertIfAbsent(ctx, "ROLLBACK-1"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		exists, err := repo.ExistsByISBN(ctx, "ROLLBACK-1")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("成功时提交", func(t *testing.T) {
		err := txManager.Transaction(ctx, func(ctx context.Context) error {
			_, err := repo.InsertIfAbsent(ctx, "COMMIT-1")
			return err
		})
		require.NoError(t, err)

		exists, err := repo.ExistsByISBN(ctx, "COMMIT-1")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("并发插入同一ISBN只有一个created", func(t *testing.T) {
		const workers = 8
		var createdCount int32
		var wg sync.WaitGroup

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := txManager.Transaction(ctx, func(ctx context.Context) error {
					created, err := repo.InsertIfAbsent(ctx, "RACE-1")
					if created {
						atomic.AddInt32(&createdCount, 1)
					}
					return err
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), createdCount)
	})
}

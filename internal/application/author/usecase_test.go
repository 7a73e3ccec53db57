package author

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/booksapi/internal/domain/author"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/redis"
)

type fixture struct {
	mr      *miniredis.Miniredis
	create  *CreateAuthorUseCase
	get     *GetAuthorUseCase
	list    *ListAuthorsUseCase
	replace *ReplaceAuthorUseCase
	patch   *PatchAuthorUseCase
	delete  *DeleteAuthorUseCase
}

// newFixture SQLite内存库 + miniredis
func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			Path:        ":memory:",
			MigrateMode: config.MigrateAuto,
		},
		Cache: config.CacheConfig{KeyPrefix: "bookstore", AuthorTTL: time.Minute, BookTTL: time.Minute},
	}
	db, err := mysql.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := author.NewService(mysql.NewAuthorRepository(db))
	txManager := mysql.NewTxManager(db)
	var cache Cache = redis.NewCacheStore(client, cfg)

	return &fixture{
		mr:      mr,
		create:  NewCreateAuthorUseCase(svc),
		get:     NewGetAuthorUseCase(svc, cache),
		list:    NewListAuthorsUseCase(svc),
		replace: NewReplaceAuthorUseCase(svc, txManager, cache),
		patch:   NewPatchAuthorUseCase(svc, txManager, cache),
		delete:  NewDeleteAuthorUseCase(svc, cache),
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestAuthorUseCases_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, author.NewAuthor("Abigail Rose", intPtr(80)))
	require.NoError(t, err)

	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.True(t, f.mr.Exists("bookstore:author:1"), "读取后回填缓存")

	// 第二次读取命中缓存
	got, err = f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	all, err := f.list.Execute(ctx, author.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAuthorUseCases_UpdateInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, author.NewAuthor("X", intPtr(30)))
	require.NoError(t, err)
	_, err = f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	f.mr.Set("bookstore:book:TEST-1", `{"isbn":"TEST-1"}`)

	patched, err := f.patch.Execute(ctx, created.ID, author.Patch{Name: strPtr("UPDATED")})
	require.NoError(t, err)
	assert.Equal(t, "UPDATED", patched.Name)
	assert.Equal(t, 30, *patched.Age)
	assert.False(t, f.mr.Exists("bookstore:author:1"))
	assert.False(t, f.mr.Exists("bookstore:book:TEST-1"), "作者变更后图书缓存失效")

	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "UPDATED", got.Name, "不应读到旧缓存")

	replaced, err := f.replace.Execute(ctx, created.ID, &author.Author{Name: "Replaced"})
	require.NoError(t, err)
	assert.Nil(t, replaced.Age)
}

func TestAuthorUseCases_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.get.Execute(ctx, 404)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)

	_, err = f.replace.Execute(ctx, 404, &author.Author{Name: "Ghost"})
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)

	_, err = f.patch.Execute(ctx, 404, author.Patch{Name: strPtr("Ghost")})
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)

	require.NoError(t, f.delete.Execute(ctx, 404), "删除不存在的作者也成功")
}

func TestAuthorUseCases_CacheFailureFallsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, author.NewAuthor("Anna Adams", nil))
	require.NoError(t, err)

	f.mr.SetError("LOADING server is loading")

	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err, "缓存不可用时降级到数据库")
	assert.Equal(t, "Anna Adams", got.Name)

	require.NoError(t, f.delete.Execute(ctx, created.ID))
}

func TestAuthorUseCases_NilCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, author.NewAuthor("No Cache", nil))
	require.NoError(t, err)

	get := NewGetAuthorUseCase(f.get.authorService, nil)
	got, err := get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

// interleavingCache 回填之前先执行一次写操作
type interleavingCache struct {
	Cache
	beforeSet func()
}

func (c *interleavingCache) SetAuthor(ctx context.Context, a *author.Author, ver string) error {
	if fn := c.beforeSet; fn != nil {
		c.beforeSet = nil
		fn()
	}
	return c.Cache.SetAuthor(ctx, a, ver)
}

func TestGetAuthor_RefillDoesNotOverwriteNewerWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, author.NewAuthor("Old Name", nil))
	require.NoError(t, err)

	racing := &interleavingCache{Cache: f.get.cache, beforeSet: func() {
		_, err := f.patch.Execute(ctx, created.ID, author.Patch{Name: strPtr("New Name")})
		require.NoError(t, err)
	}}
	got, err := NewGetAuthorUseCase(f.get.authorService, racing).Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old Name", got.Name)
	assert.False(t, f.mr.Exists("bookstore:author:1"), "旧数据不应写回缓存")

	got, err = f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.True(t, f.mr.Exists("bookstore:author:1"))
}

package mysql

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/booksapi/internal/infrastructure/config"
)

// migrationFiles 版本化迁移脚本
// 目录结构：migrations/{driver}/{version}_{name}.{up|down}.sql
// MySQL驱动默认不允许一次Exec多条语句，所以mysql目录下每个文件只有一条语句
//
//go:embed migrations
var migrationFiles embed.FS

// runMigrations 使用golang-migrate执行版本化迁移
// 学习要点：
// 1. schema_migrations表记录当前版本，重复执行是安全的
// 2. 复用GORM的*sql.DB，不单独建连接
// 3. 不调用m.Close()，它会把共享的*sql.DB一起关掉
func runMigrations(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取SQL DB失败: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("加载迁移脚本失败: %w", err)
	}

	var target database.Driver
	switch driver {
	case config.DriverMySQL:
		target, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	case config.DriverSQLite:
		target, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("初始化迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, target)
	if err != nil {
		return fmt.Errorf("初始化迁移失败: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("读取迁移版本失败: %w", err)
	}
	zap.L().Info("数据库迁移完成", zap.Uint("version", version), zap.Bool("dirty", dirty))

	return nil
}

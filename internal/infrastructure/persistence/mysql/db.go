package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/booksapi/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，生产环境用MySQL，开发和测试用SQLite
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 按migrate_mode迁移表结构（AutoMigrate / golang-migrate / 不迁移）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择驱动
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// SQLite同一时间只允许一个写者，内存库每个连接都是独立的数据库
		// 所以固定使用一个连接，并且不让它过期
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		// 连接最大存活时间（防止数据库主动断开连接）
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	zap.L().Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 6. 迁移表结构
	if err := Migrate(db, cfg.Database); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// openDialector 根据配置选择GORM驱动
func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		// SQLite默认不检查外键，ON DELETE SET NULL需要显式开启
		return sqlite.Open(cfg.Path + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// Migrate 按配置迁移表结构
// 学习要点：
// 1. auto：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段，适合开发环境
// 2. migrate：版本化SQL脚本（golang-migrate），适合生产环境
// 3. none：表结构由DBA维护
func Migrate(db *gorm.DB, cfg config.DatabaseConfig) error {
	switch cfg.MigrateMode {
	case config.MigrateAuto, "":
		return autoMigrate(db)
	case config.MigrateSQL:
		return runMigrations(db, cfg.Driver)
	case config.MigrateNone:
		return nil
	default:
		return fmt.Errorf("无效的迁移方式: %s", cfg.MigrateMode)
	}
}

// autoMigrate 自动迁移表结构
// 注意：这里需要使用GORM的模型定义（带tag），不是domain层的实体
// authors必须先于books创建（books.author_id外键引用authors.id）
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuthorModel{},
		&BookModel{},
	)
}

// AuthorModel GORM作者模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/author/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type AuthorModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:255;not null;index;comment:姓名"`
	Age  *int   `gorm:"index;comment:年龄（可为空）"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN由调用方提供，直接作为主键
// 2. Title、AuthorID都可以为NULL
// 3. 删除作者时外键置NULL，图书保留
type BookModel struct {
	ISBN     string       `gorm:"primaryKey;size:64;comment:ISBN号"`
	Title    *string      `gorm:"size:255;comment:书名"`
	AuthorID *int64       `gorm:"index;comment:作者ID"`
	Author   *AuthorModel `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

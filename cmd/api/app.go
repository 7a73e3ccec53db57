package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/xiebiao/booksapi/docs"
	appauthor "github.com/xiebiao/booksapi/internal/application/author"
	appbook "github.com/xiebiao/booksapi/internal/application/book"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/booksapi/internal/interface/http/handler"
	"github.com/xiebiao/booksapi/internal/interface/http/middleware"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Engine *gin.Engine
}

func newApp(cfg *config.Config, engine *gin.Engine) *App {
	return &App{Config: cfg, Engine: engine}
}

// ========================================
// Custom Providers (自定义Provider)
// ========================================

// provideDB 创建数据库连接，cleanup中关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedisClient 创建Redis客户端
// redis.enabled=false时返回nil客户端和空cleanup
func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if client != nil {
			_ = client.Close()
		}
	}
	return client, cleanup, nil
}

// provideAuthorCache / provideBookCache
// 注意：nil的*CacheStore赋给接口后接口不为nil，这里必须显式返回nil接口
func provideAuthorCache(store *redis.CacheStore) appauthor.Cache {
	if store == nil {
		return nil
	}
	return store
}

func provideBookCache(store *redis.CacheStore) appbook.Cache {
	if store == nil {
		return nil
	}
	return store
}

// provideGinEngine 创建并配置Gin引擎
// 中间件顺序：Recovery → Tracing → Logger → Metrics
// Tracing在Logger之前，日志才能带上trace_id
func provideGinEngine(
	cfg *config.Config,
	logger *zap.Logger,
	authorHandler *handler.AuthorHandler,
	bookHandler *handler.BookHandler,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	// 生产环境建议关闭（server.swagger=false）
	if cfg.Server.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, authorHandler, bookHandler)

	return r
}

//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改依赖后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链：
// *gin.Engine ← Handler ← UseCase ← 领域Service ← Repository ← *gorm.DB ← *config.Config
//                         UseCase ← Cache ← *redis.CacheStore ← *goredis.Client

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	appauthor "github.com/xiebiao/booksapi/internal/application/author"
	appbook "github.com/xiebiao/booksapi/internal/application/book"
	"github.com/xiebiao/booksapi/internal/domain/author"
	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/infrastructure/config"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/booksapi/internal/interface/http/handler"
)

// infrastructureSet 基础设施层依赖
// 包含：数据库连接、Redis连接、详情缓存
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedisClient,
	redis.NewCacheStore,
	provideAuthorCache,
	provideBookCache,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewAuthorRepository,
	mysql.NewBookRepository,
	mysql.NewTxManager,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	author.NewService,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appauthor.NewCreateAuthorUseCase,
	appauthor.NewGetAuthorUseCase,
	appauthor.NewListAuthorsUseCase,
	appauthor.NewReplaceAuthorUseCase,
	appauthor.NewPatchAuthorUseCase,
	appauthor.NewDeleteAuthorUseCase,
	appbook.NewSaveBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewPatchBookUseCase,
	appbook.NewDeleteBookUseCase,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewAuthorHandler,
	handler.NewBookHandler,
)

// InitializeApp 初始化整个应用
// 返回的cleanup按创建的逆序关闭Redis和数据库连接
func InitializeApp(cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
		newApp,
	)
	return nil, nil, nil
}

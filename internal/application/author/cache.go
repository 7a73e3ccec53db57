package author

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/domain/author"
	"github.com/xiebiao/booksapi/pkg/metrics"
)

// tracerName 应用层Span的instrumentation名称
const tracerName = "application/author"

// Cache 作者详情缓存(Cache-Aside)
// 由infrastructure/persistence/redis.CacheStore实现
// Redis未启用时注入nil,用例直接读写数据库
type Cache interface {
	// GetAuthor 未命中返回(nil, ver, nil)，ver是回填时要带上的版本快照
	GetAuthor(ctx context.Context, id int64) (*author.Author, string, error)
	// SetAuthor 版本快照过期(期间有写操作)时不回填
	SetAuthor(ctx context.Context, a *author.Author, ver string) error
	// InvalidateAuthor 删除作者缓存以及内嵌了作者的全部图书缓存
	InvalidateAuthor(ctx context.Context, id int64) error
}

// cacheGet 读缓存,失败只记日志并按未命中处理(降级到数据库)
// ok为false时本次查询不回填
func cacheGet(ctx context.Context, cache Cache, id int64) (_ *author.Author, ver string, ok bool) {
	if cache == nil {
		return nil, "", false
	}
	a, ver, err := cache.GetAuthor(ctx, id)
	if err != nil {
		zap.L().Warn("读取作者缓存失败", zap.Int64("author_id", id), zap.Error(err))
		metrics.IncCounterVec(metrics.CacheLookupsTotal, map[string]string{"resource": "author", "result": "error"})
		return nil, "", false
	}
	result := "miss"
	if a != nil {
		result = "hit"
	}
	metrics.IncCounterVec(metrics.CacheLookupsTotal, map[string]string{"resource": "author", "result": result})
	return a, ver, true
}

// cacheSet 带版本快照回填缓存,失败只记日志
func cacheSet(ctx context.Context, cache Cache, a *author.Author, ver string) {
	if err := cache.SetAuthor(ctx, a, ver); err != nil {
		zap.L().Warn("写入作者缓存失败", zap.Int64("author_id", a.ID), zap.Error(err))
	}
}

// cacheInvalidate 写数据库之后删除缓存,失败只记日志
// 缓存最终会因TTL过期而恢复一致
func cacheInvalidate(ctx context.Context, cache Cache, id int64) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateAuthor(ctx, id); err != nil {
		zap.L().Warn("删除作者缓存失败", zap.Int64("author_id", id), zap.Error(err))
	}
}

// recordWrite 记录写操作指标
func recordWrite(op string) {
	metrics.IncCounterVec(metrics.AuthorsWrittenTotal, map[string]string{"op": op})
}

package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/pkg/metrics"
)

// tracerName 应用层Span的instrumentation名称
const tracerName = "application/book"

// Cache 图书详情缓存(Cache-Aside)
// 由infrastructure/persistence/redis.CacheStore实现,Redis未启用时为nil
type Cache interface {
	// GetBook 未命中返回(nil, ver, nil)，ver是回填时要带上的版本快照
	GetBook(ctx context.Context, isbn string) (*book.Book, string, error)
	// SetBook 版本快照过期(期间有写操作)时不回填
	SetBook(ctx context.Context, b *book.Book, ver string) error
	DeleteBook(ctx context.Context, isbn string) error
	// InvalidateAuthor 写图书时级联写了作者,作者缓存和全部图书缓存都要删除
	InvalidateAuthor(ctx context.Context, id int64) error
}

// cacheGet 返回缓存命中的图书和版本快照
// 读取失败时ok为false，本次查询不回填
func cacheGet(ctx context.Context, cache Cache, isbn string) (_ *book.Book, ver string, ok bool) {
	if cache == nil {
		return nil, "", false
	}
	b, ver, err := cache.GetBook(ctx, isbn)
	if err != nil {
		zap.L().Warn("读取图书缓存失败", zap.String("isbn", isbn), zap.Error(err))
		metrics.IncCounterVec(metrics.CacheLookupsTotal, map[string]string{"resource": "book", "result": "error"})
		return nil, "", false
	}
	result := "miss"
	if b != nil {
		result = "hit"
	}
	metrics.IncCounterVec(metrics.CacheLookupsTotal, map[string]string{"resource": "book", "result": result})
	return b, ver, true
}

func cacheSet(ctx context.Context, cache Cache, b *book.Book, ver string) {
	if err := cache.SetBook(ctx, b, ver); err != nil {
		zap.L().Warn("写入图书缓存失败", zap.String("isbn", b.ISBN), zap.Error(err))
	}
}

// cacheInvalidate 删除图书缓存;b带作者时连同作者缓存一起删除
func cacheInvalidate(ctx context.Context, cache Cache, isbn string, authorID *int64) {
	if cache == nil {
		return
	}
	if err := cache.DeleteBook(ctx, isbn); err != nil {
		zap.L().Warn("删除图书缓存失败", zap.String("isbn", isbn), zap.Error(err))
	}
	if authorID == nil {
		return
	}
	if err := cache.InvalidateAuthor(ctx, *authorID); err != nil {
		zap.L().Warn("删除作者缓存失败", zap.Int64("author_id", *authorID), zap.Error(err))
	}
}

func recordWrite(op string) {
	metrics.IncCounterVec(metrics.BooksWrittenTotal, map[string]string{"op": op})
}

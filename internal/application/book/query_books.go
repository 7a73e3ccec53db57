package book

import (
	"context"

	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// GetBookUseCase 图书详情查询用例(Cache-Aside)
type GetBookUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service, cache Cache) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 执行详情查询
// 不存在返回book.ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, isbn string) (_ *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	// 版本快照必须在查库之前取得
	cached, ver, ok := cacheGet(ctx, uc.cache, isbn)
	if cached != nil {
		return cached, nil
	}

	b, err := uc.bookService.GetBook(ctx, isbn)
	if err != nil {
		return nil, err
	}

	if ok {
		cacheSet(ctx, uc.cache, b, ver)
	}
	return b, nil
}

// ListBooksUseCase 图书分页查询用例
// 设计说明:
// 1. page从0开始,size默认20,最大100
// 2. 按ISBN升序,翻页稳定
// 3. 分页列表不缓存(任何写操作都会让所有页失效)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksResult 分页查询结果
type ListBooksResult struct {
	Books    []*book.Book
	Total    int64
	Page     int
	PageSize int
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, params book.ListParams) (_ *ListBooksResult, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	// 参数默认值与范围限制
	params = params.Normalize()

	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	return &ListBooksResult{
		Books:    books,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

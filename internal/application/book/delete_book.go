package book

import (
	"context"

	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// DeleteBookUseCase 删除图书用例(幂等)
type DeleteBookUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, cache Cache) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, isbn string) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if err := uc.bookService.DeleteBook(ctx, isbn); err != nil {
		return err
	}

	cacheInvalidate(ctx, uc.cache, isbn, nil)
	recordWrite("delete")
	return nil
}

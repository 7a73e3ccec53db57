package book

import (
	"context"

	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// PatchBookUseCase 部分更新图书用例(PATCH /books/{isbn})
// 流程与作者的PATCH一致:存在性检查(404) → 事务内合并保存 → 删除缓存
type PatchBookUseCase struct {
	bookService book.Service
	txManager   *mysql.TxManager
	cache       Cache
}

// NewPatchBookUseCase 创建部分更新用例
func NewPatchBookUseCase(bookService book.Service, txManager *mysql.TxManager, cache Cache) *PatchBookUseCase {
	return &PatchBookUseCase{
		bookService: bookService,
		txManager:   txManager,
		cache:       cache,
	}
}

// Execute 执行部分更新
func (uc *PatchBookUseCase) Execute(ctx context.Context, isbn string, p book.Patch) (_ *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PatchBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	exists, err := uc.bookService.Exists(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, book.ErrBookNotFound
	}

	var patched *book.Book
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		patched, err = uc.bookService.PatchBook(ctx, isbn, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 只有本次提供了作者才需要删除作者缓存
	var authorID *int64
	if p.Author != nil {
		authorID = patched.AuthorID()
	}
	cacheInvalidate(ctx, uc.cache, isbn, authorID)
	recordWrite("patch")
	return patched, nil
}

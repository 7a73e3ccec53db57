package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/domain/book"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// SaveBookUseCase 创建或覆盖图书用例(PUT /books/{isbn})
// 教学要点:并发PUT同一个新ISBN
//
// 错误实现:
//  1. 查询ISBN是否存在 → 两个请求都看到"不存在"
//  2. 保存 → 两个请求都返回201
//
// 正确实现:
//  1. 开启事务
//  2. 级联保存内嵌作者
//  3. INSERT ... ON CONFLICT DO NOTHING,RowsAffected决定201还是200
//  4. 覆盖title、author_id
//  5. COMMIT
type SaveBookUseCase struct {
	bookService book.Service
	txManager   *mysql.TxManager
	cache       Cache
}

// NewSaveBookUseCase 创建用例
func NewSaveBookUseCase(bookService book.Service, txManager *mysql.TxManager, cache Cache) *SaveBookUseCase {
	return &SaveBookUseCase{
		bookService: bookService,
		txManager:   txManager,
		cache:       cache,
	}
}

// SaveBookResult 保存结果
type SaveBookResult struct {
	Book    *book.Book
	Created bool // true → 201, false → 200
}

// Execute 执行保存
// b.ISBN来自请求路径
func (uc *SaveBookUseCase) Execute(ctx context.Context, b *book.Book) (_ *SaveBookResult, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SaveBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	var created bool
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = uc.bookService.SaveBook(ctx, b)
		return err
	})
	if err != nil {
		return nil, err
	}

	cacheInvalidate(ctx, uc.cache, b.ISBN, b.AuthorID())

	op := "update"
	if created {
		op = "create"
	}
	recordWrite(op)
	zap.L().Debug("图书已保存", zap.String("isbn", b.ISBN), zap.Bool("created", created))

	return &SaveBookResult{Book: b, Created: created}, nil
}

package author

import (
	"context"

	"github.com/xiebiao/booksapi/internal/domain/author"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// DeleteAuthorUseCase 删除作者用例
// 设计说明:
// 1. 幂等:作者不存在也返回成功(HTTP 204)
// 2. 引用该作者的图书保留,author_id置NULL(外键ON DELETE SET NULL)
// 3. 图书缓存内嵌了作者,删除后全部失效
type DeleteAuthorUseCase struct {
	authorService author.Service
	cache         Cache
}

// NewDeleteAuthorUseCase 创建删除用例
func NewDeleteAuthorUseCase(authorService author.Service, cache Cache) *DeleteAuthorUseCase {
	return &DeleteAuthorUseCase{
		authorService: authorService,
		cache:         cache,
	}
}

// Execute 执行删除
func (uc *DeleteAuthorUseCase) Execute(ctx context.Context, id int64) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteAuthor")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if err := uc.authorService.DeleteAuthor(ctx, id); err != nil {
		return err
	}

	cacheInvalidate(ctx, uc.cache, id)
	recordWrite("delete")
	return nil
}

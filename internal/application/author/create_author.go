package author

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/domain/author"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// CreateAuthorUseCase 创建作者用例
// 设计说明:
// 1. 应用层负责用例编排(追踪、指标、日志),业务规则由领域服务负责
// 2. 新作者不可能已在缓存中,所以不需要删除缓存
type CreateAuthorUseCase struct {
	authorService author.Service
}

// NewCreateAuthorUseCase 创建用例
func NewCreateAuthorUseCase(authorService author.Service) *CreateAuthorUseCase {
	return &CreateAuthorUseCase{
		authorService: authorService,
	}
}

// Execute 执行创建作者
// 传入的ID会被忽略,由数据库分配
func (uc *CreateAuthorUseCase) Execute(ctx context.Context, a *author.Author) (_ *author.Author, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateAuthor")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	created, err := uc.authorService.CreateAuthor(ctx, a)
	if err != nil {
		return nil, err
	}

	recordWrite("create")
	zap.L().Debug("作者已创建", zap.Int64("author_id", created.ID))
	return created, nil
}

package author

import (
	"context"

	"github.com/xiebiao/booksapi/internal/domain/author"
	"github.com/xiebiao/booksapi/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// ReplaceAuthorUseCase 全量更新作者用例(PUT)
// 教学要点:
// 1. 先做存在性检查,不存在返回404(ErrAuthorNotFound)
// 2. 读取-覆盖-保存放在同一个事务里
// 3. 检查通过后目标又被并发删除,领域服务返回ErrAuthorVanished(500)
// 4. 提交后删除缓存(先写库再删缓存)
type ReplaceAuthorUseCase struct {
	authorService author.Service
	txManager     *mysql.TxManager
	cache         Cache
}

// NewReplaceAuthorUseCase 创建全量更新用例
func NewReplaceAuthorUseCase(authorService author.Service, txManager *mysql.TxManager, cache Cache) *ReplaceAuthorUseCase {
	return &ReplaceAuthorUseCase{
		authorService: authorService,
		txManager:     txManager,
		cache:         cache,
	}
}

// Execute 执行全量更新
func (uc *ReplaceAuthorUseCase) Execute(ctx context.Context, id int64, a *author.Author) (_ *author.Author, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ReplaceAuthor")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if err := ensureExists(ctx, uc.authorService, id); err != nil {
		return nil, err
	}

	var replaced *author.Author
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		replaced, err = uc.authorService.ReplaceAuthor(ctx, id, a)
		return err
	})
	if err != nil {
		return nil, err
	}

	cacheInvalidate(ctx, uc.cache, id)
	recordWrite("replace")
	return replaced, nil
}

// PatchAuthorUseCase 部分更新作者用例(PATCH)
// 只有非nil字段会覆盖,其他字段保持不变
type PatchAuthorUseCase struct {
	authorService author.Service
	txManager     *mysql.TxManager
	cache         Cache
}

// NewPatchAuthorUseCase 创建部分更新用例
func NewPatchAuthorUseCase(authorService author.Service, txManager *mysql.TxManager, cache Cache) *PatchAuthorUseCase {
	return &PatchAuthorUseCase{
		authorService: authorService,
		txManager:     txManager,
		cache:         cache,
	}
}

// Execute 执行部分更新
func (uc *PatchAuthorUseCase) Execute(ctx context.Context, id int64, p author.Patch) (_ *author.Author, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PatchAuthor")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if err := ensureExists(ctx, uc.authorService, id); err != nil {
		return nil, err
	}

	var patched *author.Author
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		patched, err = uc.authorService.PatchAuthor(ctx, id, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	cacheInvalidate(ctx, uc.cache, id)
	recordWrite("patch")
	return patched, nil
}

// ensureExists 存在性检查,不存在返回ErrAuthorNotFound
func ensureExists(ctx context.Context, svc author.Service, id int64) error {
	exists, err := svc.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return author.ErrAuthorNotFound
	}
	return nil
}

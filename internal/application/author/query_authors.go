package author

import (
	"context"

	"github.com/xiebiao/booksapi/internal/domain/author"
	"github.com/xiebiao/booksapi/pkg/tracing"
)

// GetAuthorUseCase 作者详情查询用例
// 教学要点:Cache-Aside读流程
//  1. 查缓存,命中直接返回
//  2. 未命中查数据库
//  3. 回填缓存(带上第1步的版本快照,期间有写操作则放弃回填)
type GetAuthorUseCase struct {
	authorService author.Service
	cache         Cache
}

// NewGetAuthorUseCase 创建详情查询用例
// cache可以为nil(Redis未启用)
func NewGetAuthorUseCase(authorService author.Service, cache Cache) *GetAuthorUseCase {
	return &GetAuthorUseCase{
		authorService: authorService,
		cache:         cache,
	}
}

// Execute 执行详情查询
// 不存在返回author.ErrAuthorNotFound
func (uc *GetAuthorUseCase) Execute(ctx context.Context, id int64) (_ *author.Author, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetAuthor")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	cached, ver, ok := cacheGet(ctx, uc.cache, id)
	if cached != nil {
		return cached, nil
	}

	a, err := uc.authorService.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	if ok {
		cacheSet(ctx, uc.cache, a, ver)
	}
	return a, nil
}

// ListAuthorsUseCase 作者列表查询用例
// 列表不分页、不缓存
type ListAuthorsUseCase struct {
	authorService author.Service
}

// NewListAuthorsUseCase 创建列表查询用例
func NewListAuthorsUseCase(authorService author.Service) *ListAuthorsUseCase {
	return &ListAuthorsUseCase{
		authorService: authorService,
	}
}

// Execute 执行列表查询
// filter为空时返回全部作者,否则执行对应的谓词查询
func (uc *ListAuthorsUseCase) Execute(ctx context.Context, filter author.ListFilter) (_ []*author.Author, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListAuthors")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	return uc.authorService.ListAuthors(ctx, filter)
}

package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 写入图书时不级联写作者,作者由author.Service单独保存
type Repository interface {
	// InsertIfAbsent 只插入ISBN(其余字段为NULL),ISBN已存在时什么也不做
	// created表示本次是否真正插入了新行
	// 用INSERT ... ON CONFLICT DO NOTHING实现,并发PUT同一个新ISBN时只有一个请求得到true
	InsertIfAbsent(ctx context.Context, isbn string) (created bool, err error)

	// Save 覆盖图书的title和author_id
	Save(ctx context.Context, b *Book) error

	// FindByISBN 根据ISBN查找图书(预加载作者),不存在返回ErrBookNotFound
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// ExistsByISBN 判断图书是否存在
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// List 分页查询图书列表,按ISBN升序
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// DeleteByISBN 删除图书,不存在时不报错(幂等)
	DeleteByISBN(ctx context.Context, isbn string) error
}

// 分页默认值
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams 列表查询参数
type ListParams struct {
	Page     int // 页码(从0开始)
	PageSize int // 每页数量
}

// Normalize 参数默认值与范围限制
// - page < 0 不合法(由调用方提前拦截,这里按0处理)
// - pageSize < 1 使用默认值20
// - pageSize > 100 限制为100
func (p ListParams) Normalize() ListParams {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset 计算偏移量
func (p ListParams) Offset() int {
	return p.Page * p.PageSize
}

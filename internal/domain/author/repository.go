package author

import (
	"context"
)

// Repository 作者仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 列表查询统一按ID升序返回
type Repository interface {
	// Create 创建作者,成功后回填a.ID
	Create(ctx context.Context, a *Author) error

	// Save 按ID保存作者:ID不存在则插入,存在则覆盖全部字段
	// a.ID为0时等同于Create
	Save(ctx context.Context, a *Author) error

	// FindByID 根据ID查找作者,不存在返回ErrAuthorNotFound
	FindByID(ctx context.Context, id int64) (*Author, error)

	// FindAll 查询全部作者
	FindAll(ctx context.Context) ([]*Author, error)

	// FindByName 按姓名精确匹配,不存在返回ErrAuthorNotFound
	FindByName(ctx context.Context, name string) (*Author, error)

	// FindByAgeLessThan 查询年龄小于age的作者(年龄未知的不返回)
	FindByAgeLessThan(ctx context.Context, age int) ([]*Author, error)

	// FindByAgeGreaterThan 查询年龄大于age的作者
	FindByAgeGreaterThan(ctx context.Context, age int) ([]*Author, error)

	// ExistsByID 判断作者是否存在
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// DeleteByID 删除作者,不存在时不报错(幂等)
	// 引用该作者的图书author_id会被置为NULL
	DeleteByID(ctx context.Context, id int64) error
}

// ListFilter 列表查询条件
// 三个条件最多只能提供一个,都不提供时返回全部作者
type ListFilter struct {
	Name           *string // 姓名精确匹配
	AgeLessThan    *int    // age < n
	AgeGreaterThan *int    // age > n
}

// Validate 校验查询条件组合
func (f ListFilter) Validate() error {
	n := 0
	if f.Name != nil {
		n++
	}
	if f.AgeLessThan != nil {
		n++
	}
	if f.AgeGreaterThan != nil {
		n++
	}
	if n > 1 {
		return ErrInvalidFilter
	}
	return nil
}

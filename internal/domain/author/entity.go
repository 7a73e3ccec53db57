package author

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// Author 作者实体(聚合根)
// DDD设计说明:
// 1. ID为数据库自增主键,创建时由存储层分配(调用方传入的ID会被忽略)
// 2. Name必填且不能为空白
// 3. Age可选,nil表示未知(对应数据库NULL)
type Author struct {
	ID   int64
	Name string
	Age  *int
}

// NewAuthor 创建新作者(工厂方法)
func NewAuthor(name string, age *int) *Author {
	return &Author{
		Name: name,
		Age:  age,
	}
}

// Validate 校验作者的业务规则
// 业务规则:姓名必填,去掉首尾空白后不能为空
func (a *Author) Validate() error {
	err := validation.ValidateStruct(a,
		validation.Field(&a.Name, validation.Required, validation.By(notBlank)),
	)
	if err != nil {
		return apperrors.WithCode(ErrInvalidName.Code, err, ErrInvalidName.Message)
	}
	return nil
}

// ReplaceWith 用src覆盖所有字段(PUT语义)
// 未提供的可选字段(Age)会被清空
func (a *Author) ReplaceWith(src *Author) {
	a.Name = src.Name
	a.Age = src.Age
}

// Apply 合并部分更新(PATCH语义)
// 只有非nil字段才会覆盖
func (a *Author) Apply(p Patch) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Age != nil {
		age := *p.Age
		a.Age = &age
	}
}

// Patch 作者部分更新
// nil表示"未提供",不支持显式清空字段
type Patch struct {
	Name *string
	Age  *int
}

// IsEmpty 是否没有任何字段需要更新
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil
}

// Validate 校验部分更新
// 提供了Name时同样不能为空白
func (p Patch) Validate() error {
	if p.Name == nil {
		return nil
	}
	err := validation.Validate(*p.Name, validation.Required, validation.By(notBlank))
	if err != nil {
		return apperrors.WithCode(ErrInvalidName.Code, err, ErrInvalidName.Message)
	}
	return nil
}

// notBlank ozzo的Required不会把纯空白字符串视为空
func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "must not be blank")
	}
	return nil
}

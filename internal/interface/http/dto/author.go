package dto

import (
	"github.com/xiebiao/booksapi/internal/domain/author"
)

// AuthorDTO 作者的线上(JSON)表示
// 请求和响应共用同一个结构:
// - 请求中的id会被忽略(POST)或以路径参数为准(PUT/PATCH)
// - 字段为null/缺省表示"未提供",PATCH时不覆盖
type AuthorDTO struct {
	ID   *int64  `json:"id" example:"1"`
	Name *string `json:"name" example:"John Smith"`
	Age  *int    `json:"age" example:"70"`
}

// ListAuthorsQuery GET /authors 查询参数
// 三个条件最多提供一个
type ListAuthorsQuery struct {
	Name           *string `form:"name" example:"John Smith"`
	AgeLessThan    *int    `form:"age_lt" example:"50"`
	AgeGreaterThan *int    `form:"age_gt" example:"50"`
}

// ToFilter 转换为领域查询条件
func (q ListAuthorsQuery) ToFilter() author.ListFilter {
	return author.ListFilter{
		Name:           q.Name,
		AgeLessThan:    q.AgeLessThan,
		AgeGreaterThan: q.AgeGreaterThan,
	}
}

// ToAuthor DTO → 领域实体(POST/PUT,全量语义)
// name缺省时得到空字符串,由领域校验拒绝
func ToAuthor(d AuthorDTO) *author.Author {
	a := &author.Author{Age: d.Age}
	if d.ID != nil {
		a.ID = *d.ID
	}
	if d.Name != nil {
		a.Name = *d.Name
	}
	return a
}

// ToAuthorPatch DTO → 部分更新(PATCH)
// id不可修改,直接忽略
func ToAuthorPatch(d AuthorDTO) author.Patch {
	return author.Patch{
		Name: d.Name,
		Age:  d.Age,
	}
}

// FromAuthor 领域实体 → DTO
func FromAuthor(a *author.Author) AuthorDTO {
	id := a.ID
	name := a.Name
	return AuthorDTO{
		ID:   &id,
		Name: &name,
		Age:  a.Age,
	}
}

// FromAuthors 批量转换,空结果返回[]而不是null
func FromAuthors(authors []*author.Author) []AuthorDTO {
	list := make([]AuthorDTO, len(authors))
	for i, a := range authors {
		list[i] = FromAuthor(a)
	}
	return list
}

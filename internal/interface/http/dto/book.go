package dto

import (
	"github.com/xiebiao/booksapi/internal/domain/book"
)

// BookDTO 图书的线上(JSON)表示
// isbn以路径参数为准,请求体里的isbn会被忽略
type BookDTO struct {
	ISBN   string     `json:"isbn" example:"9781234567897"`
	Title  *string    `json:"title" example:"Go语言实战"`
	Author *AuthorDTO `json:"author"`
}

// ListBooksQuery GET /books 分页参数
// page从0开始;size缺省或为0时使用默认值20,超过100按100处理
type ListBooksQuery struct {
	Page int `form:"page" binding:"min=0" example:"0"`
	Size int `form:"size" binding:"min=0" example:"20"`
}

// ToParams 转换为领域分页参数
func (q ListBooksQuery) ToParams() book.ListParams {
	return book.ListParams{
		Page:     q.Page,
		PageSize: q.Size,
	}.Normalize()
}

// ToBook DTO → 领域实体(PUT,全量语义)
func ToBook(isbn string, d BookDTO) *book.Book {
	b := book.NewBook(isbn, d.Title, nil)
	if d.Author != nil {
		b.Author = ToAuthor(*d.Author)
	}
	return b
}

// ToBookPatch DTO → 部分更新(PATCH)
func ToBookPatch(d BookDTO) book.Patch {
	p := book.Patch{Title: d.Title}
	if d.Author != nil {
		p.Author = ToAuthor(*d.Author)
	}
	return p
}

// FromBook 领域实体 → DTO
func FromBook(b *book.Book) BookDTO {
	d := BookDTO{
		ISBN:  b.ISBN,
		Title: b.Title,
	}
	if b.Author != nil {
		a := FromAuthor(b.Author)
		d.Author = &a
	}
	return d
}

// FromBooks 批量转换,空页返回[]而不是null
func FromBooks(books []*book.Book) []BookDTO {
	list := make([]BookDTO, len(books))
	for i, b := range books {
		list[i] = FromBook(b)
	}
	return list
}

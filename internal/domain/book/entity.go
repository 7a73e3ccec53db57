package book

import (
	"github.com/xiebiao/booksapi/internal/domain/author"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ISBN是调用方提供的业务主键(同时也是数据库主键)
// 2. Title可选,nil对应数据库NULL
// 3. Author可选,最多引用一个作者;作者被删除后图书保留,Author变为nil
type Book struct {
	ISBN   string
	Title  *string
	Author *author.Author
}

// NewBook 创建新图书(工厂方法)
// isbn来自请求路径,请求体里的isbn会被忽略
func NewBook(isbn string, title *string, a *author.Author) *Book {
	return &Book{
		ISBN:   isbn,
		Title:  title,
		Author: a,
	}
}

// Validate 校验图书的业务规则
// 图书本身没有必填字段,只校验内嵌作者
func (b *Book) Validate() error {
	if b.Author != nil {
		return b.Author.Validate()
	}
	return nil
}

// AuthorID 返回引用的作者ID,没有作者时返回nil
func (b *Book) AuthorID() *int64 {
	if b.Author == nil {
		return nil
	}
	id := b.Author.ID
	return &id
}

// Apply 合并部分更新(PATCH语义)
func (b *Book) Apply(p Patch) {
	if p.Title != nil {
		title := *p.Title
		b.Title = &title
	}
	if p.Author != nil {
		b.Author = p.Author
	}
}

// Patch 图书部分更新
// nil表示"未提供"
type Patch struct {
	Title  *string
	Author *author.Author
}

// Validate 校验部分更新
func (p Patch) Validate() error {
	if p.Author != nil {
		return p.Author.Validate()
	}
	return nil
}

package mysql

import (
	"github.com/xiebiao/booksapi/internal/domain/author"
	"github.com/xiebiao/booksapi/internal/domain/book"
)

// =========================================
// 辅助函数:模型转换
// =========================================

// toAuthorModel 领域实体 → GORM模型
func toAuthorModel(a *author.Author) *AuthorModel {
	return &AuthorModel{
		ID:   a.ID,
		Name: a.Name,
		Age:  a.Age,
	}
}

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		ID:   model.ID,
		Name: model.Name,
		Age:  model.Age,
	}
}

// toAuthorEntities 批量转换
func toAuthorEntities(models []AuthorModel) []*author.Author {
	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors
}

// toBookEntity GORM模型 → 领域实体
// Author需要调用方Preload,未加载或author_id为NULL时为nil
func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ISBN:  model.ISBN,
		Title: model.Title,
	}
	if model.Author != nil {
		b.Author = toAuthorEntity(model.Author)
	}
	return b
}

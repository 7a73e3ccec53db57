package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册作者和图书的REST路由
func RegisterRoutes(r gin.IRouter, authorHandler *AuthorHandler, bookHandler *BookHandler) {
	// 作者模块
	authors := r.Group("/authors")
	{
		authors.POST("", authorHandler.CreateAuthor)
		authors.GET("", authorHandler.ListAuthors)
		authors.GET("/:id", authorHandler.GetAuthor)
		authors.PUT("/:id", authorHandler.ReplaceAuthor)
		authors.PATCH("/:id", authorHandler.PatchAuthor)
		authors.DELETE("/:id", authorHandler.DeleteAuthor)
	}

	// 图书模块
	// 图书没有POST,ISBN由客户端指定,PUT即创建或更新
	books := r.Group("/books")
	{
		books.GET("", bookHandler.ListBooks)
		books.GET("/:isbn", bookHandler.GetBook)
		books.PUT("/:isbn", bookHandler.SaveBook)
		books.PATCH("/:isbn", bookHandler.PatchBook)
		books.DELETE("/:isbn", bookHandler.DeleteBook)
	}
}

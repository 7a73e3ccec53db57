package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/booksapi/internal/application/book"
	"github.com/xiebiao/booksapi/internal/interface/http/dto"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
	"github.com/xiebiao/booksapi/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	saveBookUseCase   *appbook.SaveBookUseCase
	getBookUseCase    *appbook.GetBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
	patchBookUseCase  *appbook.PatchBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	saveBookUseCase *appbook.SaveBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	patchBookUseCase *appbook.PatchBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		saveBookUseCase:   saveBookUseCase,
		getBookUseCase:    getBookUseCase,
		listBooksUseCase:  listBooksUseCase,
		patchBookUseCase:  patchBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// SaveBook 创建或全量更新图书
// @Summary      创建或全量更新图书
// @Description  isbn以路径为准;ISBN不存在时创建(201),存在时更新(200)
// @Description  内嵌的author没有id时会先创建该作者,有id时按id创建或更新
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        isbn    path string      true "ISBN"
// @Param        request body dto.BookDTO true "图书信息"
// @Success      200 {object} dto.BookDTO "已更新"
// @Success      201 {object} dto.BookDTO "已创建"
// @Failure      400 "参数错误(请求体无法解析或作者姓名为空)"
// @Router       /books/{isbn} [put]
func (h *BookHandler) SaveBook(c *gin.Context) {
	// 1. 参数绑定
	var req dto.BookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.WithCode(apperrors.ErrCodeBindError, err, "请求体格式错误"))
		return
	}

	// 2. 调用应用层用例
	result, err := h.saveBookUseCase.Execute(c.Request.Context(), dto.ToBook(c.Param("isbn"), req))
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 新建返回201,更新返回200
	if result.Created {
		response.Created(c, dto.FromBook(result.Book))
		return
	}
	response.OK(c, dto.FromBook(result.Book))
}

// ListBooks 分页查询图书
// @Summary      分页查询图书
// @Description  按isbn升序分页;分页信息见X-Total-Count、X-Page、X-Page-Size、X-Total-Pages响应头
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码(从0开始)" default(0)
// @Param        size query int false "每页数量(最大100)" default(20)
// @Success      200 {array} dto.BookDTO
// @Header       200 {integer} X-Total-Count "总记录数"
// @Header       200 {integer} X-Total-Pages "总页数"
// @Failure      400 "分页参数错误"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, apperrors.WithCode(apperrors.ErrCodeBindError, err, "分页参数错误"))
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), query.ToParams())
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := response.NewPageMeta(result.Total, result.Page, result.PageSize)
	response.SuccessWithPage(c, dto.FromBooks(result.Books), meta)
}

// GetBook 查询图书详情
// @Summary      查询图书详情
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} dto.BookDTO
// @Failure      404 "图书不存在"
// @Router       /books/{isbn} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	result, err := h.getBookUseCase.Execute(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromBook(result))
}

// PatchBook 部分更新图书
// @Summary      部分更新图书
// @Description  只覆盖请求体中非null的字段;author规则同PUT
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        isbn    path string      true "ISBN"
// @Param        request body dto.BookDTO true "需要修改的字段"
// @Success      200 {object} dto.BookDTO
// @Failure      400 "参数错误"
// @Failure      404 "图书不存在"
// @Router       /books/{isbn} [patch]
func (h *BookHandler) PatchBook(c *gin.Context) {
	var req dto.BookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.WithCode(apperrors.ErrCodeBindError, err, "请求体格式错误"))
		return
	}

	result, err := h.patchBookUseCase.Execute(c.Request.Context(), c.Param("isbn"), dto.ToBookPatch(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromBook(result))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  幂等操作,图书不存在也返回204
// @Tags         图书
// @Param        isbn path string true "ISBN"
// @Success      204
// @Router       /books/{isbn} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.deleteBookUseCase.Execute(c.Request.Context(), c.Param("isbn")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/booksapi/internal/application/author"
	"github.com/xiebiao/booksapi/internal/interface/http/dto"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
	"github.com/xiebiao/booksapi/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	createAuthorUseCase  *appauthor.CreateAuthorUseCase
	getAuthorUseCase     *appauthor.GetAuthorUseCase
	listAuthorsUseCase   *appauthor.ListAuthorsUseCase
	replaceAuthorUseCase *appauthor.ReplaceAuthorUseCase
	patchAuthorUseCase   *appauthor.PatchAuthorUseCase
	deleteAuthorUseCase  *appauthor.DeleteAuthorUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(
	createAuthorUseCase *appauthor.CreateAuthorUseCase,
	getAuthorUseCase *appauthor.GetAuthorUseCase,
	listAuthorsUseCase *appauthor.ListAuthorsUseCase,
	replaceAuthorUseCase *appauthor.ReplaceAuthorUseCase,
	patchAuthorUseCase *appauthor.PatchAuthorUseCase,
	deleteAuthorUseCase *appauthor.DeleteAuthorUseCase,
) *AuthorHandler {
	return &AuthorHandler{
		createAuthorUseCase:  createAuthorUseCase,
		getAuthorUseCase:     getAuthorUseCase,
		listAuthorsUseCase:   listAuthorsUseCase,
		replaceAuthorUseCase: replaceAuthorUseCase,
		patchAuthorUseCase:   patchAuthorUseCase,
		deleteAuthorUseCase:  deleteAuthorUseCase,
	}
}

// CreateAuthor 创建作者
// @Summary      创建作者
// @Description  请求体中的id会被忽略,由数据库分配
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        request body dto.AuthorDTO true "作者信息"
// @Success      201 {object} dto.AuthorDTO
// @Failure      400 "参数错误(请求体无法解析或name为空)"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	// 1. 参数绑定
	var req dto.AuthorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.WithCode(apperrors.ErrCodeBindError, err, "请求体格式错误"))
		return
	}

	// 2. 调用应用层用例
	result, err := h.createAuthorUseCase.Execute(c.Request.Context(), dto.ToAuthor(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Created(c, dto.FromAuthor(result))
}

// ListAuthors 查询作者列表
// @Summary      查询作者列表
// @Description  按id升序返回;name、age_lt、age_gt最多指定一个
// @Tags         作者
// @Produce      json
// @Param        name   query string false "按姓名精确匹配"
// @Param        age_lt query int    false "年龄小于"
// @Param        age_gt query int    false "年龄大于"
// @Success      200 {array} dto.AuthorDTO
// @Failure      400 "查询条件无效"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	var query dto.ListAuthorsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, apperrors.WithCode(apperrors.ErrCodeBindError, err, "查询参数格式错误"))
		return
	}

	authors, err := h.listAuthorsUseCase.Execute(c.Request.Context(), query.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromAuthors(authors))
}

// GetAuthor 查询作者详情
// @Summary      查询作者详情
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} dto.AuthorDTO
// @Failure      400 "id格式错误"
// @Failure      404 "作者不存在"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := parseAuthorID(c)
	if !ok {
		return
	}

	result, err := h.getAuthorUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromAuthor(result))
}

// ReplaceAuthor 全量更新作者
// @Summary      全量更新作者
// @Description  所有字段以请求体为准,缺省的age会被清空
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        id      path int           true "作者ID"
// @Param        request body dto.AuthorDTO true "作者信息"
// @Success      200 {object} dto.AuthorDTO
// @Failure      400 "参数错误"
// @Failure      404 "作者不存在"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) ReplaceAuthor(c *gin.Context) {
	id, ok := parseAuthorID(c)
	if !ok {
		return
	}

	var req dto.AuthorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.WithCode(apperrors.ErrCodeBindError, err, "请求体格式错误"))
		return
	}

	result, err := h.replaceAuthorUseCase.Execute(c.Request.Context(), id, dto.ToAuthor(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromAuthor(result))
}

// PatchAuthor 部分更新作者
// @Summary      部分更新作者
// @Description  只覆盖请求体中非null的字段
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        id      path int           true "作者ID"
// @Param        request body dto.AuthorDTO true "需要修改的字段"
// @Success      200 {object} dto.AuthorDTO
// @Failure      400 "参数错误"
// @Failure      404 "作者不存在"
// @Router       /authors/{id} [patch]
func (h *AuthorHandler) PatchAuthor(c *gin.Context) {
	id, ok := parseAuthorID(c)
	if !ok {
		return
	}

	var req dto.AuthorDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.WithCode(apperrors.ErrCodeBindError, err, "请求体格式错误"))
		return
	}

	result, err := h.patchAuthorUseCase.Execute(c.Request.Context(), id, dto.ToAuthorPatch(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromAuthor(result))
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Description  幂等操作,作者不存在也返回204;引用该作者的图书author置空
// @Tags         作者
// @Param        id path int true "作者ID"
// @Success      204
// @Failure      400 "id格式错误"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseAuthorID(c)
	if !ok {
		return
	}

	if err := h.deleteAuthorUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// parseAuthorID 解析路径参数id,失败时直接写400响应
func parseAuthorID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperrors.WithCode(apperrors.ErrCodeBindError, err, "作者id格式错误"))
		return 0, false
	}
	return id, true
}

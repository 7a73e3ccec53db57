package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// 设计说明：
// 1. 成功响应直接返回资源的JSON表示（不包统一信封），与客户端约定的线上格式一致
// 2. 失败响应只返回HTTP状态码，业务错误码放在X-Error-Code响应头
// 3. 5xx错误的内部原因只写日志，不返回给客户端

// HeaderErrorCode 业务错误码响应头
const HeaderErrorCode = "X-Error-Code"

// 分页元数据响应头
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderPageSize   = "X-Page-Size"
	HeaderTotalPages = "X-Total-Pages"
)

// OK 200响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	a, err := h.getAuthor.Execute(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := HTTPStatus(appErr.Code)

	// 记录详细错误到日志（包含内部错误）
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	}

	_ = c.Error(appErr)
	c.Header(HeaderErrorCode, strconv.Itoa(appErr.Code))
	c.AbortWithStatus(status)
}

// HTTPStatus 业务错误码 → HTTP状态码
// 规则：
// - 404xx → 404
// - 400xx、409xx（参数错误）→ 400
// - 其他 → 500
func HTTPStatus(code int) int {
	switch code / 100 {
	case apperrors.ErrCodeNotFound / 100:
		return http.StatusNotFound
	case apperrors.ErrCodeBusinessError / 100, apperrors.ErrCodeInvalidParams / 100:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// =========================================
// 分页响应
// =========================================

// PageMeta 分页元数据
type PageMeta struct {
	Total      int64 // 总记录数
	Page       int   // 当前页码(从0开始)
	PageSize   int   // 每页大小
	TotalPages int   // 总页数
}

// NewPageMeta 创建分页元数据
func NewPageMeta(total int64, page, pageSize int) PageMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize != 0 {
			totalPages++
		}
	}

	return PageMeta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SuccessWithPage 分页成功响应
// 响应体为当前页的数据数组，分页信息写入响应头
func SuccessWithPage(c *gin.Context, list interface{}, meta PageMeta) {
	c.Header(HeaderTotalCount, strconv.FormatInt(meta.Total, 10))
	c.Header(HeaderPage, strconv.Itoa(meta.Page))
	c.Header(HeaderPageSize, strconv.Itoa(meta.PageSize))
	c.Header(HeaderTotalPages, strconv.Itoa(meta.TotalPages))
	c.JSON(http.StatusOK, list)
}

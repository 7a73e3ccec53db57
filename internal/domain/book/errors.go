package book

import (
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidISBN ISBN为空
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN不能为空")

	// ErrInvalidPage 分页参数不合法
	ErrInvalidPage = apperrors.New(apperrors.ErrCodeInvalidParams, "分页参数不合法")

	// ErrBookVanished 存在性检查通过后,合并更新前图书被删除
	ErrBookVanished = apperrors.New(apperrors.ErrCodeInternal, "图书在更新过程中被删除")
)

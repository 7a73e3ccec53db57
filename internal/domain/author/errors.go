package author

import (
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrInvalidName 作者姓名为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "作者姓名不能为空")

	// ErrInvalidFilter 查询条件组合不合法
	ErrInvalidFilter = apperrors.New(apperrors.ErrCodeInvalidParams, "一次只能使用一个查询条件")

	// ErrAuthorVanished 存在性检查通过后,合并更新前作者被删除
	// 属于内部不变量被破坏,映射为500
	ErrAuthorVanished = apperrors.New(apperrors.ErrCodeInternal, "作者在更新过程中被删除")
)

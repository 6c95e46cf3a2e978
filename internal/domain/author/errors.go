package author

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "Author not found.")

	// ErrNoAuthors 作者列表为空
	ErrNoAuthors = apperrors.New(apperrors.ErrCodeAuthorNotFound, "No authors found.")

	// ErrInvalidID 非法的作者ID
	ErrInvalidID = apperrors.New(apperrors.ErrCodeInvalidArgument, "Invalid author ID.")

	// ErrIDMismatch 路径ID与请求体ID不一致
	ErrIDMismatch = apperrors.New(apperrors.ErrCodeInvalidArgument, "The ID in the URL must match the ID in the request body.")

	// ErrNameRequired 名字必填
	ErrNameRequired = apperrors.New(apperrors.ErrCodeInvalidArgument, "The Name field is required.")

	// ErrNameDuplicate 名字已存在
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeAuthorNameDuplicate, "An author with this name already exists.")

	// ErrConcurrentUpdate 更新时发现记录已被他人修改
	ErrConcurrentUpdate = apperrors.New(apperrors.ErrCodeConcurrentUpdate, "The author was modified by another request.")
)

package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found.")

	// ErrNoMatches 标题搜索没有结果
	ErrNoMatches = apperrors.New(apperrors.ErrCodeBookNotFound, "No books found.")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "A book with this ISBN already exists.")

	// ErrConcurrentUpdate 提交时发现记录已被并发修改
	ErrConcurrentUpdate = apperrors.New(apperrors.ErrCodeConcurrentUpdate, "The book was modified by another request.")

	// ErrInvalidPaging 分页参数非法
	ErrInvalidPaging = apperrors.New(apperrors.ErrCodeInvalidArgument, "Page and pageSize must be greater than 0.")

	// ErrTitleQueryRequired 搜索缺少title参数
	ErrTitleQueryRequired = apperrors.New(apperrors.ErrCodeInvalidArgument, "Title query parameter is required.")

	// ErrIDMismatch 路径ID与请求体ID不一致
	ErrIDMismatch = apperrors.New(apperrors.ErrCodeInvalidArgument, "The ID in the URL must match the ID in the request body.")

	// ErrTitleRequired 书名必填
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidArgument, "The Title field is required.")

	// ErrISBNRequired ISBN必填
	ErrISBNRequired = apperrors.New(apperrors.ErrCodeInvalidArgument, "The ISBN field is required.")
)

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，前三位对应错误类别（400/404/409/500），由HTTPStatus映射为HTTP状态码
// 2. Message是可直接展示给调用方的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// 这样 WithMessage 派生出的错误依然满足 errors.Is(err, ErrBookNotFound)
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus 根据错误码区间返回HTTP状态码
func (e *AppError) HTTPStatus() int {
	switch e.Code / 100 {
	case 400:
		return http.StatusBadRequest
	case 404:
		return http.StatusNotFound
	case 409:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WithMessage 复制错误并替换提示信息（错误码不变）
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Code: e.Code, Message: message, Err: e.Err}
}

// WithMessagef 格式化版本的WithMessage
func (e *AppError) WithMessagef(format string, args ...interface{}) *AppError {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误）
// 原始错误保留在Err中，对外只暴露message
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 参数错误（调用方问题，重试无意义）
// - 404xx: 资源不存在
// - 409xx: 冲突（唯一约束、并发修改）
// - 500xx: 服务端错误（存储异常等）

const (
	ErrCodeInvalidArgument = 40000 // 参数错误(通用)
	ErrCodeBindError       = 40001 // 请求体/查询参数绑定失败

	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeAuthorNotFound = 40401 // 作者不存在
	ErrCodeBookNotFound   = 40402 // 图书不存在

	ErrCodeConflict            = 40900 // 冲突(通用)
	ErrCodeISBNDuplicate       = 40901 // ISBN已存在
	ErrCodeAuthorNameDuplicate = 40902 // 作者名已存在
	ErrCodeConcurrentUpdate    = 40903 // 并发修改冲突

	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInvalidArgument = New(ErrCodeInvalidArgument, "invalid argument")
	ErrBindError       = New(ErrCodeBindError, "malformed request")
	ErrNotFound        = New(ErrCodeNotFound, "resource not found")
	ErrConflict        = New(ErrCodeConflict, "resource conflict")
	ErrInternal        = New(ErrCodeInternal, "internal server error")
	ErrDatabaseError   = New(ErrCodeDatabaseError, "database error")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal server error")
}

// IsCategory 判断错误是否属于某一类别（按错误码前三位）
//
//	IsCategory(err, ErrCodeNotFound) // 40401、40402 都返回true
func IsCategory(err error, categoryCode int) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code/100 == categoryCode/100
}

// Package errors 提供带追踪信息的应用错误与统一的 HTTP 错误响应
package errors

import (
	stderrors "errors"
	"time"

	"github.com/inkwells/smart-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError wraps a code.Code with request trace information
// AppError 为 code.Code 附加请求追踪信息
type AppError struct {
	Code      *code.Code
	TraceID   string
	Timestamp int64
	Cause     error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Code.Msg() + ": " + e.Cause.Error()
	}
	return e.Code.Msg()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError for the given code
// New 为指定错误码创建 AppError
func New(c *code.Code, traceID string) *AppError {
	return &AppError{
		Code:      c,
		TraceID:   traceID,
		Timestamp: time.Now().Unix(),
	}
}

// WithCause attaches the underlying cause
// WithCause 附加底层原因
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// ErrorResponse renders any error as the wire error body. Unknown errors are
// masked as internal server errors so internals never leak to clients.
// ErrorResponse 将任意错误渲染为传输错误体。未知错误统一
// 作为内部错误返回，避免内部细节泄露给客户端。
func ErrorResponse(c *gin.Context, err error) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		c.JSON(appErr.Code.StatusCode(), appErr.Code.Body())
		return
	}

	var codeErr *code.Code
	if stderrors.As(err, &codeErr) {
		c.JSON(codeErr.StatusCode(), codeErr.Body())
		return
	}

	internal := code.ErrorServerInternal
	c.JSON(internal.StatusCode(), internal.Body())
}

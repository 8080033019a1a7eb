// Package app 提供 HTTP 响应封装与请求绑定工具
package app

import (
	"net/http"

	"github.com/inkwells/smart-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// Response binds a gin context for uniform output
// Response 绑定 gin 上下文以统一输出
type Response struct {
	Ctx *gin.Context
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{Ctx: ctx}
}

// ToResponse 200 with payload
func (r *Response) ToResponse(data any) {
	r.ToStatusResponse(http.StatusOK, data)
}

// ToCreatedResponse 201 with payload
func (r *Response) ToCreatedResponse(data any) {
	r.ToStatusResponse(http.StatusCreated, data)
}

// ToNoContentResponse 204 without body
func (r *Response) ToNoContentResponse() {
	r.Ctx.Status(http.StatusNoContent)
}

func (r *Response) ToStatusResponse(status int, data any) {
	if data == nil {
		data = gin.H{}
	}
	r.Ctx.JSON(status, data)
}

// ToErrorResponse renders the error code as the wire error body
// ToErrorResponse 将错误码渲染为传输错误体
func (r *Response) ToErrorResponse(err *code.Code) {
	r.Ctx.JSON(err.StatusCode(), err.Body())
}

// ToValidationErrorResponse renders binding validation failures, one detail
// entry per invalid field.
// ToValidationErrorResponse 渲染绑定校验失败，每个非法字段一个详情条目。
func (r *Response) ToValidationErrorResponse(errs ValidErrors) {
	details := make([]code.Detail, 0, len(errs))
	for _, e := range errs {
		details = append(details, code.Detail{
			Type: "value_error",
			Loc:  []string{"body", e.Field},
			Msg:  e.Message,
		})
	}
	if len(details) == 0 {
		details = append(details, code.ErrorInvalidParams.Detail())
	}
	r.Ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": details})
}

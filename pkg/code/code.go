// Package code 定义携带 HTTP 状态与响应详情的错误码对象
package code

import (
	"fmt"
	"net/http"
)

// DetailCtx extra context attached to a response detail entry
// DetailCtx 响应详情条目附带的额外上下文
type DetailCtx struct {
	Reason string `json:"reason"`
}

// Detail one entry of the error response body
// Detail 错误响应体中的一个条目
type Detail struct {
	Type  string     `json:"type"`
	Loc   []string   `json:"loc"`
	Msg   string     `json:"msg"`
	Input any        `json:"input,omitempty"`
	Ctx   *DetailCtx `json:"ctx,omitempty"`
}

// Code an error code object. Immutable after definition; With* methods clone.
// Code 错误码对象。定义后不可变，With* 方法返回克隆。
type Code struct {
	status   int
	typ      string
	loc      []string
	msg      string
	reason   string
	input    any
	hasInput bool
}

var registered = map[string]struct{}{}

// NewError defines an error code. Duplicate messages panic at init time so
// collisions surface immediately.
// NewError 定义一个错误码。消息重复会在初始化阶段 panic，便于立即发现冲突。
func NewError(status int, loc []string, msg string, reason string) *Code {
	if _, ok := registered[msg]; ok {
		panic(fmt.Sprintf("code: message %q already registered", msg))
	}
	registered[msg] = struct{}{}
	return &Code{
		status: status,
		typ:    "value_error",
		loc:    loc,
		msg:    msg,
		reason: reason,
	}
}

func (e *Code) Error() string {
	return e.msg
}

// StatusCode HTTP status for this code
// StatusCode 该错误码对应的 HTTP 状态
func (e *Code) StatusCode() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

func (e *Code) Msg() string {
	return e.msg
}

// Clone returns a copy that can be customized per request
// Clone 返回可按请求定制的副本
func (e *Code) Clone() *Code {
	clone := *e
	clone.loc = append([]string(nil), e.loc...)
	return &clone
}

// WithInput clones the code and echoes the offending input in the response
// WithInput 克隆错误码并在响应中回显出错的输入
func (e *Code) WithInput(input any) *Code {
	clone := e.Clone()
	clone.input = input
	clone.hasInput = true
	return clone
}

// WithReason clones the code with a request specific reason
// WithReason 克隆错误码并设置请求相关的原因
func (e *Code) WithReason(reason string) *Code {
	clone := e.Clone()
	clone.reason = reason
	return clone
}

// Detail renders the wire detail entry
// Detail 渲染传输用的详情条目
func (e *Code) Detail() Detail {
	d := Detail{
		Type: e.typ,
		Loc:  e.loc,
		Msg:  e.msg,
	}
	if e.hasInput {
		d.Input = e.input
	}
	if e.reason != "" {
		d.Ctx = &DetailCtx{Reason: e.reason}
	}
	return d
}

// Body renders the full error response body
// Body 渲染完整的错误响应体
func (e *Code) Body() map[string]any {
	return map[string]any{"detail": []Detail{e.Detail()}}
}

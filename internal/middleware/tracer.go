// Package middleware 提供 gin 中间件
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TraceHeaderKey trace id header and context key
// TraceHeaderKey 追踪 ID 的请求头与上下文键
const TraceHeaderKey = "X-Trace-ID"

// TraceMiddleware assigns every request a trace id, reusing the inbound one
// when present, and echoes it in the response header.
// TraceMiddleware 为每个请求分配追踪 ID，存在入站值时复用，
// 并在响应头中回显。
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeaderKey)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(TraceHeaderKey, traceID)
		c.Writer.Header().Set(TraceHeaderKey, traceID)
		c.Next()
	}
}

// GetTraceID reads the request trace id from the gin context
// GetTraceID 从 gin 上下文读取请求追踪 ID
func GetTraceID(c *gin.Context) string {
	return c.GetString(TraceHeaderKey)
}

package middleware

import (
	"github.com/inkwells/smart-note-service/pkg/code"
	"github.com/inkwells/smart-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger recovers panics, logs the stack and answers with the
// internal error body.
// RecoveryWithLogger 捕获 panic，记录调用栈并返回内部错误响应。
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				lg.Error("panic recovered",
					zap.Any("panic", err),
					zap.String(logger.FieldPath, c.Request.URL.Path),
					zap.String(logger.FieldTraceID, GetTraceID(c)),
					zap.Stack("stack"),
				)
				internal := code.ErrorServerInternal
				c.AbortWithStatusJSON(internal.StatusCode(), internal.Body())
			}
		}()
		c.Next()
	}
}

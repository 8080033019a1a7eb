package middleware

import (
	"time"

	"github.com/inkwells/smart-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog logs one structured line per request
// AccessLog 为每个请求记录一条结构化日志
func AccessLog(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		lg.Info("access",
			zap.String(logger.FieldMethod, c.Request.Method),
			zap.String(logger.FieldPath, c.Request.URL.Path),
			zap.Int(logger.FieldStatus, c.Writer.Status()),
			zap.Duration(logger.FieldDuration, time.Since(start)),
			zap.String(logger.FieldTraceID, GetTraceID(c)),
			zap.String("clientIp", c.ClientIP()),
		)
	}
}

package middleware

import (
	"strings"

	pkgapp "github.com/inkwells/smart-note-service/pkg/app"
	"github.com/inkwells/smart-note-service/pkg/code"
	"github.com/inkwells/smart-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserAuthToken validates the bearer token of the required type and stores the
// parsed claims in the context for handlers.
// UserAuthToken 校验所需类型的 Bearer 令牌，
// 并把解析后的声明放入上下文供处理器使用。
func UserAuthToken(tokenManager pkgapp.TokenManager, typ pkgapp.TokenType, lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortInvalidToken(c)
			return
		}

		claims, err := tokenManager.Parse(token, typ)
		if err != nil {
			lg.Debug("token rejected",
				zap.String(logger.FieldTraceID, GetTraceID(c)),
				zap.Error(err))
			abortInvalidToken(c)
			return
		}

		c.Set(pkgapp.ContextUserTokenKey, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortInvalidToken(c *gin.Context) {
	invalid := code.ErrorInvalidToken
	c.AbortWithStatusJSON(invalid.StatusCode(), invalid.Body())
}

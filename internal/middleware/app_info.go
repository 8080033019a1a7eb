package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppInfo exposes service identity on every response
// AppInfo 在每个响应上暴露服务标识
func AppInfo(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-App-Name", name)
		c.Writer.Header().Set("X-App-Version", version)
		c.Next()
	}
}

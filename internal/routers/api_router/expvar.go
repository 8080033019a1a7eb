package api_router

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

// Expvar 输出进程运行时变量
func Expvar(c *gin.Context) {
	expvar.Handler().ServeHTTP(c.Writer, c.Request)
}

package middleware

import (
	"github.com/inkwells/smart-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 未匹配路由的兜底处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		notFound := code.ErrorNotFoundAPI.WithInput(c.Request.URL.Path)
		c.JSON(notFound.StatusCode(), notFound.Body())
	}
}

package middleware

import (
	pkgapp "github.com/inkwells/smart-note-service/pkg/app"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// Translations puts the request translator into the context so binding errors
// get readable messages.
// Translations 把请求翻译器放入上下文，让绑定错误得到可读的提示。
func Translations(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uni != nil {
			locale := c.GetHeader("Accept-Language")
			trans, found := uni.GetTranslator(locale)
			if !found {
				trans = uni.GetFallback()
			}
			c.Set(pkgapp.ContextTransKey, trans)
		}
		c.Next()
	}
}

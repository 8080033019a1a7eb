package middleware

import (
	"github.com/inkwells/smart-note-service/pkg/code"
	"github.com/inkwells/smart-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter rejects requests once the matching token bucket runs dry
// RateLimiter 在对应令牌桶耗尽后拒绝请求
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			if bucket.TakeAvailable(1) == 0 {
				limited := code.ErrorTooManyRequests
				c.AbortWithStatusJSON(limited.StatusCode(), limited.Body())
				return
			}
		}
		c.Next()
	}
}

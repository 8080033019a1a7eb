// Package limiter 基于令牌桶的接口限流器
package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face limiter interface consumed by middleware
// Face 中间件使用的限流器接口
type Face interface {
	// Key derives the bucket key from the request
	// Key 从请求推导出桶的键
	Key(c *gin.Context) string
	// GetBucket looks up a bucket for the key
	// GetBucket 查找键对应的令牌桶
	GetBucket(key string) (*ratelimit.Bucket, bool)
	// AddBuckets registers bucket rules
	// AddBuckets 注册令牌桶规则
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule token bucket configuration for one key
// BucketRule 单个键的令牌桶配置
type BucketRule struct {
	Key          string        // URI prefix // URI 前缀
	FillInterval time.Duration // Token fill interval // 令牌填充间隔
	Capacity     int64         // Bucket capacity // 桶容量
	Quantum      int64         // Tokens added per interval // 每次填充的令牌数
}

// Limiter holds the registered buckets
// Limiter 保存已注册的令牌桶
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// MethodLimiter keys buckets by request path prefix
// MethodLimiter 以请求路径前缀作为桶的键
type MethodLimiter struct {
	*Limiter
}

func NewMethodLimiter() Face {
	return MethodLimiter{
		Limiter: &Limiter{limiterBuckets: make(map[string]*ratelimit.Bucket)},
	}
}

func (l MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	if index := strings.Index(uri, "?"); index >= 0 {
		uri = uri[:index]
	}
	return uri
}

func (l MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	if bucket, ok := l.limiterBuckets[key]; ok {
		return bucket, true
	}
	// prefix match so one rule covers a route group
	// 前缀匹配，单条规则即可覆盖一组路由
	for prefix, bucket := range l.limiterBuckets {
		if strings.HasPrefix(key, prefix) {
			return bucket, true
		}
	}
	return nil, false
}

func (l MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}

package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"slotswap/pkg/response"
)

// RateLimitStore 分布式限流存储（由 pkg/redis.Client 实现）
type RateLimitStore interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 基于 Redis 滑动窗口的速率限制中间件
// limit: 窗口内允许的最大请求数
// window: 滑动窗口时长
// store 为 nil 或出错时降级到进程内令牌桶 local；local 也为 nil 时放行
func RateLimit(store RateLimitStore, limit int, window time.Duration, local *IPLimiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("slotswap:rate_limit:%s:%s", c.ClientIP(), c.FullPath())

		allowed := true
		checked := false
		if store != nil {
			ok, err := store.CheckRateLimit(c.Request.Context(), key, limit, window)
			if err != nil {
				logger.Warn("Redis 限流失败，降级到本地限流", zap.Error(err))
			} else {
				allowed, checked = ok, true
			}
		}
		if !checked && local != nil {
			allowed = local.Allow(key)
		}

		if !allowed {
			response.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// IPLimiter 进程内按 key 令牌桶限流
type IPLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewIPLimiter 创建本地限流器
func NewIPLimiter(rps float64, burst int) *IPLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// Allow 消耗 key 对应桶中的一个令牌
func (l *IPLimiter) Allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotswap/config"
	"slotswap/internal/api/handler"
	"slotswap/internal/api/middleware"
	"slotswap/pkg/jwt"
	"slotswap/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：黑名单检查跳过，限流退化为进程内令牌桶
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// nil *redis.Client 不能直接赋给接口，否则接口非 nil
	var (
		blacklist middleware.TokenBlacklist
		limiter   middleware.RateLimitStore
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}
	local := middleware.NewIPLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，限流）
		authLimit := middleware.RateLimit(limiter, cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow, local, logger)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authLimit, h.Auth.Signup)
			auth.POST("/login", authLimit, h.Auth.Login)
		}

		// 以下路由需要认证
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 时间槽
			events := authorized.Group("/events")
			{
				events.GET("", h.Event.List)
				events.POST("", h.Event.Create)
				events.GET("/export", h.Export.Export)
				events.POST("/import", h.Export.Import)
				events.PUT("/:id", h.Event.Update)
				events.DELETE("/:id", h.Event.Delete)
			}

			// 市场视图
			authorized.GET("/swappable-slots", h.Marketplace.SwappableSlots)
			authorized.GET("/swap-requests/incoming", h.Marketplace.Incoming)
			authorized.GET("/swap-requests/outgoing", h.Marketplace.Outgoing)

			// 换班
			authorized.POST("/swap-request", h.Swap.Propose)
			authorized.POST("/swap-response/:id", h.Swap.Respond)
		}
	}

	return r
}

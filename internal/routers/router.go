// Package routers 组装 HTTP 路由
package routers

import (
	"time"

	internalApp "github.com/inkwells/smart-note-service/internal/app"
	"github.com/inkwells/smart-note-service/internal/middleware"
	"github.com/inkwells/smart-note-service/internal/routers/api_router"
	pkgapp "github.com/inkwells/smart-note-service/pkg/app"
	"github.com/inkwells/smart-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// methodLimiters auth endpoints share one bucket so brute force stays cheap to
// shed
// methodLimiters 认证端点共享一个令牌桶，便于低成本拦截暴力尝试
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/v1/auth",
		FillInterval: time.Second,
		Capacity:     20,
		Quantum:      10,
	},
)

// NewRouter builds the public API router
// NewRouter 构建公开 API 路由
func NewRouter(app *internalApp.App, uni *ut.UniversalTranslator) *gin.Engine {
	config := app.Config()
	lg := app.Logger()

	r := gin.New()
	r.Use(middleware.AppInfo(internalApp.Name, internalApp.Version))
	if config.Server.RunMode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.RateLimiter(methodLimiters))
	r.Use(middleware.ContextTimeout(config.GetDefaultContextTimeout()))
	r.Use(middleware.Cors())
	r.Use(middleware.Translations(uni))
	r.Use(middleware.Metrics())
	r.Use(middleware.AccessLog(lg))
	r.Use(middleware.RecoveryWithLogger(lg))

	r.NoRoute(middleware.NoFound())
	r.NoMethod(middleware.NoFound())

	base := api_router.NewHandler(app)
	authHandler := api_router.NewAuthHandler(base)
	noteHandler := api_router.NewNoteHandler(base)
	analyticsHandler := api_router.NewAnalyticsHandler(base)

	accessAuth := middleware.UserAuthToken(app.TokenManager, pkgapp.TokenTypeAccess, lg)
	refreshAuth := middleware.UserAuthToken(app.TokenManager, pkgapp.TokenTypeRefresh, lg)

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/sign_up", authHandler.SignUp)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", refreshAuth, authHandler.Refresh)
			auth.GET("/me", accessAuth, authHandler.Me)
		}

		notes := v1.Group("/notes", accessAuth)
		{
			notes.POST("/", noteHandler.Create)
			notes.GET("/", noteHandler.List)
			notes.GET("/:id", noteHandler.Get)
			notes.PATCH("/:id", noteHandler.Update)
			notes.DELETE("/:id", noteHandler.Delete)
			notes.GET("/history/:id", noteHandler.History)
		}

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/", analyticsHandler.Get)
			analytics.GET("/notes", analyticsHandler.Notes)
		}
	}

	return r
}

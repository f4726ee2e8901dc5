package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/botjournal/internal/middleware"
)

// RouterOptions tunes the global middlewares.
type RouterOptions struct {
	RateLimit      int           // requests per client IP per minute; 0 disables
	MaxBodyBytes   int64         // cap on request bodies (uploaded logs)
	RequestTimeout time.Duration // deadline attached to every request context
}

// DefaultRouterOptions matches the values used when config leaves them unset.
func DefaultRouterOptions() RouterOptions {
	return RouterOptions{RateLimit: 60, MaxBodyBytes: 5 << 20, RequestTimeout: 10 * time.Second}
}

// NewRouter builds the gin engine with middlewares, swagger and the /api/v1
// routes. Health probes are registered separately by app.InitializeApp.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	def := DefaultRouterOptions()
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = def.MaxBodyBytes
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = def.RequestTimeout
	}

	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimit, time.Minute),
		middleware.MaxBodySize(opts.MaxBodyBytes),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), opts.RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.POST("/logs", handler.IngestLog)
		v1.POST("/compare", handler.CompareLogs)

		days := v1.Group("/days")
		days.GET("", handler.ListDays)
		days.GET("/:date", handler.GetDay)
		days.DELETE("/:date", handler.DeleteDay)
		days.GET("/:date/diff", handler.DiffDay)
		days.POST("/:date/merge", handler.MergeDay)
	}

	return router
}

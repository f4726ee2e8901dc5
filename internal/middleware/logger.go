package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/botjournal/internal/logger"
)

// RequestLogger logs one structured line per request once the handler chain
// has finished. Requests that recorded gin errors are logged at warn level
// together with the first error.
//
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		ev := logger.L().Info()
		if len(c.Errors) > 0 {
			ev = logger.L().Warn().Str("error", c.Errors[0].Error())
		}
		ev.Str("request_id", RequestIDFrom(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/projectflow/projectflow/pkg/logger"
)

// Trace attaches a trace id to every request context and echoes it back in
// the X-Request-Id header. Inbound ids are honored so callers can correlate.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if inbound := c.GetHeader("X-Request-Id"); inbound != "" {
			ctx = logger.WithTraceID(ctx, inbound)
		}
		ctx, traceID := logger.EnsureTraceID(ctx)

		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-Id", traceID)
		c.Next()
	}
}

// RequestLogger logs one line per request with method, path, status, and
// latency.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info(c.Request.Context(), "request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/ephemeris-api/internal/logging"
)

// RequestLogger assigns a request ID, echoes it in X-Request-ID, stores a
// request-scoped logger on the request context, and logs each request.
// An incoming X-Request-ID is reused.
func RequestLogger(base logging.Logger) gin.HandlerFunc {
	if base == nil {
		base = logging.Noop()
	}

	return func(c *gin.Context) {
		start := time.Now()

		ctx := c.Request.Context()
		if id := c.GetHeader(logging.RequestIDHeader); id != "" && len(id) <= 128 {
			ctx = logging.ContextWithRequestID(ctx, id)
		}
		ctx, log := logging.WithRequestLogger(ctx, base)
		ctx = logging.ContextWithLogger(ctx, log)
		c.Request = c.Request.WithContext(ctx)
		c.Header(logging.RequestIDHeader, logging.RequestIDFromContext(ctx))

		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("error", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error(ctx, "request failed", fields...)
		case status >= 400:
			log.Warn(ctx, "request rejected", fields...)
		default:
			log.Info(ctx, "request handled", fields...)
		}
	}
}

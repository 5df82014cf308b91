package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vetcarepro/clinic-api/pkg/logger"
)

// Logger returns a middleware that logs HTTP requests through the shared
// zerolog logger.
func Logger(log *logger.Logger) gin.HandlerFunc {
	zl := log.Zerolog()
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		evt := zl.Info()
		switch {
		case statusCode >= 500:
			evt = zl.Error()
		case statusCode >= 400:
			evt = zl.Warn()
		}

		evt.
			Str("request_id", c.GetString(ContextRequestID)).
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("latency", latency).
			Str("user_agent", c.Request.UserAgent()).
			Msg("request processed")
	}
}

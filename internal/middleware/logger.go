package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinichq/clinic-api/pkg/logger"
)

// Logger logs each request after it completes, leveled by status class.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Zerolog().Info()
		switch {
		case status >= 500:
			event = log.Zerolog().Error()
		case status >= 400:
			event = log.Zerolog().Warn()
		}

		event.
			Str("request_id", c.GetString(ContextRequestID)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("client_ip", c.ClientIP()).
			Int("status", status).
			Dur("latency", latency).
			Msg("request processed")
	}
}

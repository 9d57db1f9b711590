package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func Logger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		c.Next()

		evt := logger.Info()
		if err := c.Errors.Last(); err != nil {
			evt = logger.Error().Err(err.Err)
		}

		evt.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("remote_ip", c.ClientIP()).
			Msg("request")
	}
}

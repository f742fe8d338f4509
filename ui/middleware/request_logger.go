package middleware

import (
	"time"

	"hormoiq/internal"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the leveled logger. Server
// errors log at WARN, everything else at DEBUG.
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
		if status >= 500 {
			logger.Warn("%s %s -> %d (%.2fms) %s", c.Request.Method, c.Request.URL.Path, status, elapsed, c.Errors.String())
			return
		}
		logger.Debug("%s %s -> %d (%.2fms)", c.Request.Method, c.Request.URL.Path, status, elapsed)
	}
}

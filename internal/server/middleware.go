package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dirserve/internal/util"
)

const requestIDHeader = "X-Request-Id"

// requestLogger tags each request with an id and logs it once complete.
func requestLogger(logger util.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.NewString()
		c.Header(requestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		evt := logger.Info()
		if status >= 500 {
			evt = logger.Error()
		}
		evt.Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.RequestURI()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Msg("request served")
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hearth/internal/logger"
)

const requestIDKey = "requestID"

// RequestLogging tags every request with an ID, echoes it in the
// X-Request-ID header, and logs the outcome with method, path, status,
// latency and client IP.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := uuid.New().String()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)

		c.Next()

		logger.Get().Infow("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leano777/subtracker-api/internal/logger"
	"github.com/leano777/subtracker-api/internal/uuid"
)

const requestIDKey = "requestID"

// RequestLogging tags each request with a time-ordered request ID and logs
// one line per request after it completes. Server errors are logged at
// error level so they stand out in aggregated logs.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New()
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if status >= 500 {
			logger.Get().Errorw("request", fields...)
		} else {
			logger.Get().Infow("request", fields...)
		}
	}
}

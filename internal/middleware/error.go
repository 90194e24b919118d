package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/logger"
)

// ErrorHandler converts errors attached to the Gin context into the JSON
// error envelope. It is the safety net for errors that bypass the handlers'
// own responses; nothing is written if a handler already responded.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, code, message := classify(err)

		if status >= 500 {
			logger.Get().Errorw("unhandled request error",
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}

		c.JSON(status, gin.H{
			"error": gin.H{"code": code, "message": message},
		})
	}
}

func classify(err error) (int, string, string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode, appErr.Code, appErr.Message
	}
	fallback := apperrors.ErrInternalServer
	return fallback.StatusCode, fallback.Code, fallback.Message
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/leano777/subtracker-api/internal/errors"
	"github.com/leano777/subtracker-api/internal/logger"
)

// getUserID reads the authenticated user ID set by the auth middleware.
func getUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}
	id, ok := v.(uint)
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID parses the named path parameter as a uint.
//
//nolint:unparam // param is intentionally generic for routes with multiple ids
func parsePathID(c *gin.Context, param string) (uint, error) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// respondWithError writes the JSON error envelope for err. Known AppErrors
// keep their status and code; anything else becomes a logged 500.
func respondWithError(c *gin.Context, err error) {
	appErr := asAppError(err)
	if appErr == apperrors.ErrInternalServer || appErr.Internal != nil {
		logger.Get().Errorw("request failed",
			"code", appErr.Code,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}
	c.JSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

func asAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.ErrInternalServer
}

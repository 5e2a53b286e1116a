package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "numbers/internal/errors"
	"numbers/internal/logger"
)

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic storage error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrStorage.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrStorage.Code,
			"message": apperrors.ErrStorage.Message,
		},
	})
}

// dateLayouts are the formats accepted for dates in requests, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "02/01/2006"}

// parseDate parses a request date in any accepted layout.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrValidation, "unrecognized date "+s)
}

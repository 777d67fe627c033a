package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/hiennv/logbin/internal/pkg/apperrors"
	"github.com/hiennv/logbin/internal/pkg/logger"
)

// ErrorHandler renders the last error pushed with c.Error as
// {"code": ..., "error": ...} using the mapped status.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := apperrors.Wrap(c.Errors.Last().Err)

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", appErr.Type,
			"request_id", c.GetString(ContextRequestID),
		}

		if appErr.HTTPStatus >= 500 {
			logger.LogError(c.Request.Context(), appErr, "internal error", logFields...)
		} else {
			logger.Warn(appErr.Error(), logFields...)
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.HTTPStatus, appErr)
	}
}

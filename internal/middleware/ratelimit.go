package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hiennv/logbin/internal/pkg/apperrors"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles requests whose path starts with prefix.
// A nil limiter disables it.
func RateLimitMiddleware(limiter *rate.Limiter, prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !strings.HasPrefix(c.Request.URL.Path, prefix) {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.Error(apperrors.New(apperrors.ErrRateLimited, "rate limit exceeded", nil))
			c.Abort()
			return
		}

		c.Next()
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hiennv/logbin/internal/pkg/logger"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "request_id"
	// ContextRoute holds a low-cardinality route name set by handlers.
	ContextRoute = "route"
)

// RequestLogger tags each request with an id and writes one access log line
// after the handler chain returns.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(ContextRequestID, reqID)
		c.Header(HeaderRequestID, reqID)

		c.Next()

		logger.Info("request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", RouteName(c),
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// SetRoute records which logical route served the request.
func SetRoute(c *gin.Context, name string) {
	c.Set(ContextRoute, name)
}

// RouteName returns the route set by SetRoute, else the matched gin path.
func RouteName(c *gin.Context) string {
	if name := c.GetString(ContextRoute); name != "" {
		return name
	}
	if full := c.FullPath(); full != "" {
		return full
	}
	return "unmatched"
}

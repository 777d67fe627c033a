package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hiennv/logbin/internal/config"
	"github.com/hiennv/logbin/internal/middleware"
	"github.com/hiennv/logbin/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter mounts health, metrics and the edge router on a gin engine.
func NewRouter(cfg *config.Config, store *service.LogStore) *gin.Engine {
	r := gin.New()
	// Unmatched paths, trailing slashes included, belong to the edge router.
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.MetricsMiddleware())

	var limiter *rate.Limiter
	if cfg.Capture.RateLimitQPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Capture.RateLimitQPS), cfg.Capture.RateLimitBurst)
	}
	r.Use(middleware.RateLimitMiddleware(limiter, cfg.Routes.CapturePrefix))

	r.SetHTMLTemplate(ViewerTemplate())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "logbin", "instance": store.Instance()})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	logs := NewLogHandler(store, cfg.Routes.CapturePrefix, cfg.Capture.MaxBodyBytes)
	edge := NewEdgeRouter(cfg.Routes.APIPrefix, cfg.Routes.CapturePrefix, logs)
	r.NoRoute(edge.Handle)

	return r
}

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hiennv/logbin/internal/middleware"
)

const viewerTemplate = "index.html"

// EdgeRouter forwards API traffic to the log handler and answers
// everything else with the viewer page.
type EdgeRouter struct {
	apiPrefix     string
	capturePrefix string
	logs          *LogHandler
}

func NewEdgeRouter(apiPrefix, capturePrefix string, logs *LogHandler) *EdgeRouter {
	return &EdgeRouter{
		apiPrefix:     apiPrefix,
		capturePrefix: capturePrefix,
		logs:          logs,
	}
}

func (e *EdgeRouter) Handle(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, e.apiPrefix) {
		e.logs.Serve(c)
		return
	}

	middleware.SetRoute(c, RouteViewer)
	c.HTML(http.StatusOK, viewerTemplate, gin.H{
		"APIPrefix":     e.apiPrefix,
		"CapturePrefix": e.capturePrefix,
	})
}

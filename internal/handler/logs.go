package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hiennv/logbin/internal/middleware"
	"github.com/hiennv/logbin/internal/pkg/apperrors"
	"github.com/hiennv/logbin/internal/service"
	"github.com/tidwall/pretty"
)

const (
	RouteCapture = "capture"
	RouteList    = "list"
	RouteDelete  = "delete"
	RouteViewer  = "viewer"
	RouteOther   = "method_not_allowed"
)

// LogHandler serves the store's HTTP surface. Paths under capturePrefix
// are always recorded, whatever the verb. The remaining API paths list on
// GET and delete on DELETE.
type LogHandler struct {
	store         *service.LogStore
	capturePrefix string
	maxBodyBytes  int64
}

func NewLogHandler(store *service.LogStore, capturePrefix string, maxBodyBytes int64) *LogHandler {
	return &LogHandler{
		store:         store,
		capturePrefix: capturePrefix,
		maxBodyBytes:  maxBodyBytes,
	}
}

// Serve dispatches one request forwarded by the edge router.
func (h *LogHandler) Serve(c *gin.Context) {
	switch {
	case strings.HasPrefix(c.Request.URL.Path, h.capturePrefix):
		h.Capture(c)
	case c.Request.Method == http.MethodGet:
		h.List(c)
	case c.Request.Method == http.MethodDelete:
		h.Delete(c)
	default:
		middleware.SetRoute(c, RouteOther)
		c.String(http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *LogHandler) Capture(c *gin.Context) {
	middleware.SetRoute(c, RouteCapture)

	in := service.Capture{
		Method:  c.Request.Method,
		URL:     absoluteURL(c.Request),
		Headers: flattenHeaders(c.Request),
		Data:    readPayload(c, h.maxBodyBytes),
	}

	res, err := h.store.Record(c.Request.Context(), in)
	if err != nil {
		c.Error(apperrors.NewStoreWrite(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *LogHandler) List(c *gin.Context) {
	middleware.SetRoute(c, RouteList)

	logs, err := h.store.List(c.Request.Context())
	if err != nil {
		c.Error(apperrors.New(apperrors.ErrInternal, err.Error(), err))
		return
	}
	raw, err := logs.Encode()
	if err != nil {
		c.Error(apperrors.New(apperrors.ErrInternal, err.Error(), err))
		return
	}
	if wantPretty(c.Query("pretty")) {
		raw = pretty.Pretty(raw)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (h *LogHandler) Delete(c *gin.Context) {
	middleware.SetRoute(c, RouteDelete)

	ts := c.Query("time")
	if ts == "" {
		c.Error(apperrors.NewInvalidRequest("Time parameter is required"))
		return
	}

	res, err := h.store.Delete(c.Request.Context(), ts)
	if err != nil {
		if errors.Is(err, service.ErrMissingTime) {
			c.Error(apperrors.NewInvalidRequest("Time parameter is required"))
			return
		}
		c.Error(apperrors.New(apperrors.ErrInternal, err.Error(), err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func wantPretty(raw string) bool {
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

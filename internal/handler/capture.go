package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hiennv/logbin/internal/middleware"
	"github.com/hiennv/logbin/internal/pkg/logger"
	"github.com/hiennv/logbin/internal/pkg/metrics"
	"github.com/hiennv/logbin/internal/service"
)

// readPayload returns the request's JSON body, or nil when there is none.
// Logging is best-effort: an unreadable or malformed body is recorded as
// absent data and never fails the request.
func readPayload(c *gin.Context, maxBytes int64) json.RawMessage {
	r := c.Request
	if r.Body == nil || !service.AcceptsPayload(r.Method, r.Header.Get("Content-Type")) {
		return nil
	}

	body := io.Reader(r.Body)
	if maxBytes > 0 {
		body = http.MaxBytesReader(c.Writer, r.Body, maxBytes)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		dropPayload(c, "unreadable body", err)
		return nil
	}

	data, err := service.DecodePayload(raw)
	if err != nil {
		dropPayload(c, "Invalid JSON body", err)
		return nil
	}
	return data
}

func dropPayload(c *gin.Context, msg string, err error) {
	metrics.MalformedBodies.Inc()
	logger.Warn(msg,
		"request_id", c.GetString(middleware.ContextRequestID),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err.Error(),
	)
}

// flattenHeaders maps lower-cased header names to their last value. The
// Host header, which net/http lifts out of the map, is put back.
func flattenHeaders(r *http.Request) map[string]string {
	out := make(map[string]string, len(r.Header)+1)
	if r.Host != "" {
		out["host"] = r.Host
	}
	for name, values := range r.Header {
		if len(values) == 0 {
			continue
		}
		out[strings.ToLower(name)] = values[len(values)-1]
	}
	return out
}

// absoluteURL rebuilds the URL the client addressed, query string included.
func absoluteURL(r *http.Request) string {
	if r.URL.IsAbs() {
		return r.URL.String()
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawPath:  r.URL.RawPath,
		RawQuery: r.URL.RawQuery,
	}
	return u.String()
}

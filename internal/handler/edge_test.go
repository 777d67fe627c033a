package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestViewerServedOutsideAPI(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	for _, target := range []string{"/", "/index.html", "/some/page?x=1"} {
		rec := s.do(http.MethodGet, target, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "<title>logbin</title>")
	}

	rec := s.do(http.MethodPost, "/anything", strings.NewReader("x"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.list(t), "viewer requests must not touch the store")
}

func TestViewerUsesConfiguredPrefixes(t *testing.T) {
	cfg := testConfig()
	cfg.Routes.APIPrefix = "/hooks"
	cfg.Routes.CapturePrefix = "/hooks/in"
	s := newTestServer(t, cfg, nil)

	rec := s.do(http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/hooks"`)
	assert.Contains(t, rec.Body.String(), `"/hooks/in"`)

	decodeSave(t, s.do(http.MethodPost, "/hooks/in", nil, nil))
	rec = s.do(http.MethodGet, "/hooks", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"url":"http://example.com/hooks/in"`)
}

func TestTrailingSlashReachesViewer(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = true
	s := newTestServer(t, cfg, nil)

	for _, target := range []string{"/health/", "/metrics/", "/other/"} {
		rec := s.do(http.MethodGet, target, nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Empty(t, rec.Header().Get("Location"), target)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"), target)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	rec := s.do(http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"logbin","instance":"default"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = true
	s := newTestServer(t, cfg, nil)

	decodeSave(t, s.do(http.MethodPost, "/api/logs", nil, nil))
	rec := s.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "logbin_records_saved_total")
}

func TestCaptureRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Capture.RateLimitQPS = float64(rate.Limit(0.001))
	cfg.Capture.RateLimitBurst = 2
	s := newTestServer(t, cfg, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, s.do(http.MethodPost, "/api/logs", nil, nil).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Len(t, s.list(t), 2)
}

package handler

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsoluteURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/logs?q=1", nil)
	req.Host = "svc.local:8080"
	assert.Equal(t, "http://svc.local:8080/api/logs?q=1", absoluteURL(req))

	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://svc.local:8080/api/logs?q=1", absoluteURL(req))

	req.TLS = nil
	req.Header.Set("X-Forwarded-Proto", "HTTPS, http")
	assert.Equal(t, "https://svc.local:8080/api/logs?q=1", absoluteURL(req))

	abs := httptest.NewRequest(http.MethodGet, "http://proxy.example/api/logs/x?y=z", nil)
	assert.Equal(t, "http://proxy.example/api/logs/x?y=z", absoluteURL(abs))
}

func TestFlattenHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/logs", nil)
	req.Host = "h"
	req.Header["X-Multi"] = []string{"a", "b"}
	req.Header["X-Empty"] = []string{}
	req.Header.Set("User-Agent", "curl/8")

	got := flattenHeaders(req)
	assert.Equal(t, map[string]string{
		"host":       "h",
		"x-multi":    "b",
		"user-agent": "curl/8",
	}, got)
}

func TestWantPretty(t *testing.T) {
	assert.True(t, wantPretty("1"))
	assert.True(t, wantPretty("true"))
	assert.False(t, wantPretty(""))
	assert.False(t, wantPretty("nope"))
	assert.False(t, wantPretty("0"))
}

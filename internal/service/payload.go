package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ErrEmptyPayload is returned by DecodePayload for a blank body.
var ErrEmptyPayload = errors.New("empty body")

// AcceptsPayload reports whether a captured request's body should be parsed:
// the verb must carry a body and the content type must declare JSON.
func AcceptsPayload(method, contentType string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return false
	}
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

// DecodePayload parses body as a single JSON value. Callers decide what a
// failure means; the capture path stores the record without data.
func DecodePayload(body []byte) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyPayload
	}
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

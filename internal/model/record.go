package model

import (
	"encoding/json"
	"time"
)

// TimeLayout is the ISO-8601 form used for LogRecord.Time. The fixed-width
// fraction keeps identifiers comparable as strings.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// LogRecord is one captured request. Time doubles as the deletion key.
type LogRecord struct {
	Time    string            `json:"time"`
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Data    json.RawMessage   `json:"data"`
}

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParsedTime returns the record timestamp. ok is false for unparsable values.
func (r LogRecord) ParsedTime() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, r.Time)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MarshalJSON writes an absent payload as null rather than omitting it.
func (r LogRecord) MarshalJSON() ([]byte, error) {
	type alias LogRecord
	out := alias(r)
	if len(out.Data) == 0 {
		out.Data = json.RawMessage("null")
	}
	if out.Headers == nil {
		out.Headers = map[string]string{}
	}
	return json.Marshal(out)
}

// HasData reports whether a payload was captured.
func (r LogRecord) HasData() bool {
	return len(r.Data) > 0 && string(r.Data) != "null"
}

// SaveResult is returned by the record operation.
type SaveResult struct {
	Message string `json:"message"`
	Total   int    `json:"total"`
	Time    string `json:"time,omitempty"`
}

// DeleteResult is returned by the delete operation.
type DeleteResult struct {
	Message string `json:"message"`
	Total   int    `json:"total"`
}

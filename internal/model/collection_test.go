package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(ts string) LogRecord {
	return LogRecord{Time: ts, Method: "POST", URL: "http://x/api/logs"}
}

func TestPushFrontAndTruncate(t *testing.T) {
	var c Collection
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 51; i++ {
		c = c.PushFront(rec(FormatTime(base.Add(time.Duration(i) * time.Second))))
		var evicted int
		c, evicted = c.Truncate(50)
		assert.LessOrEqual(t, len(c), 50)
		if i == 50 {
			assert.Equal(t, 1, evicted)
		} else {
			assert.Zero(t, evicted)
		}
	}

	require.Len(t, c, 50)
	assert.Equal(t, FormatTime(base.Add(50*time.Second)), c[0].Time)
	assert.Equal(t, FormatTime(base.Add(1*time.Second)), c[49].Time)
}

func TestRemoveByTime(t *testing.T) {
	c := Collection{rec("a"), rec("b"), rec("a"), rec("c")}

	out, removed := c.RemoveByTime("a")
	assert.Equal(t, 2, removed)
	assert.Len(t, out, 2)

	out, removed = out.RemoveByTime("missing")
	assert.Zero(t, removed)
	assert.Len(t, out, 2)
}

func TestSortedByTimeDesc(t *testing.T) {
	c := Collection{
		rec("2024-01-01T00:00:01.000Z"),
		rec("garbage"),
		rec("2024-01-01T00:00:03.000000Z"),
		rec("2024-01-01T00:00:02.5Z"),
	}
	sorted := c.SortedByTimeDesc()

	got := make([]string, 0, len(sorted))
	for _, r := range sorted {
		got = append(got, r.Time)
	}
	assert.Equal(t, []string{
		"2024-01-01T00:00:03.000000Z",
		"2024-01-01T00:00:02.5Z",
		"2024-01-01T00:00:01.000Z",
		"garbage",
	}, got)
	assert.Equal(t, "2024-01-01T00:00:01.000Z", c[0].Time, "source must not be reordered")
}

func TestEncodeDecode(t *testing.T) {
	c := Collection{{
		Time:    "2024-01-01T00:00:00.000000Z",
		Method:  "POST",
		URL:     "http://x/api/logs?a=1",
		Headers: map[string]string{"content-type": "application/json"},
		Data:    json.RawMessage(`{"x": 1}`),
	}, rec("2023-12-31T00:00:00.000000Z")}

	raw, err := c.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":{"x":1}`)
	assert.Contains(t, string(raw), `"data":null`)
	assert.Contains(t, string(raw), `"headers":{}`)

	back, err := DecodeCollection(raw)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.True(t, back[0].HasData())
	assert.False(t, back[1].HasData())

	empty, err := DecodeCollection(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	nullDoc, err := DecodeCollection([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, nullDoc)

	_, err = DecodeCollection([]byte("{"))
	assert.Error(t, err)

	none, err := Collection(nil).Encode()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(none))
}

func TestFormatTimeIsUTC(t *testing.T) {
	loc := time.FixedZone("x", 7*3600)
	ts := time.Date(2024, 5, 6, 7, 8, 9, 123456789, loc)
	assert.Equal(t, "2024-05-06T00:08:09.123456Z", FormatTime(ts))

	parsed, ok := LogRecord{Time: FormatTime(ts)}.ParsedTime()
	require.True(t, ok)
	assert.Equal(t, ts.Truncate(time.Microsecond).UTC(), parsed)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptsPayload(t *testing.T) {
	assert.True(t, AcceptsPayload("POST", "application/json"))
	assert.True(t, AcceptsPayload("PATCH", "Application/JSON; charset=utf-8"))
	assert.True(t, AcceptsPayload("DELETE", "application/json"))
	assert.False(t, AcceptsPayload("GET", "application/json"))
	assert.False(t, AcceptsPayload("POST", "text/plain"))
	assert.False(t, AcceptsPayload("POST", ""))
}

func TestDecodePayload(t *testing.T) {
	raw, err := DecodePayload([]byte(` {"x": [1, 2]} `))
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":[1,2]}`, string(raw))

	_, err = DecodePayload([]byte("{oops"))
	assert.Error(t, err)

	_, err = DecodePayload([]byte("  "))
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	val := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", val))
	val[0] = 'z'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	got[1] = 'z'

	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
	assert.NoError(t, kv.Close())
}

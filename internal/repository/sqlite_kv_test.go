package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/hiennv/logbin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKV(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "logbin.db")

	kv, err := NewSQLiteKV(path)
	require.NoError(t, err)

	_, err = kv.Get(ctx, "default:logs")
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, kv.Put(ctx, "default:logs", []byte(`[1]`)))
	require.NoError(t, kv.Put(ctx, "default:logs", []byte(`[2]`)))

	got, err := kv.Get(ctx, "default:logs")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))
	require.NoError(t, kv.Close())

	reopened, err := NewSQLiteKV(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err = reopened.Get(ctx, "default:logs")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))
}

func TestLogStoreOnSQLite(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "logbin.db"))
	require.NoError(t, err)
	defer kv.Close()

	store := service.NewLogStore(kv, service.WithCapacity(5))
	for i := 0; i < 8; i++ {
		_, err := store.Record(ctx, service.Capture{Method: "POST", URL: fmt.Sprintf("http://x/api/logs?%d", i)})
		require.NoError(t, err)
	}

	logs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 5)
	assert.Equal(t, "http://x/api/logs?7", logs[0].URL)

	res, err := store.Delete(ctx, logs[0].Time)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
}

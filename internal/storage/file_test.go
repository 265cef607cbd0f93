package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/storage"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	ctx := context.Background()

	// Missing snapshot loads as nil, not as an error.
	data, err := store.Load(ctx, storage.EventKey)
	require.NoError(t, err)
	assert.Nil(t, data)

	payload := []byte(`[{"id":"1","title":"Tech Conference 2025"}]`)
	require.NoError(t, store.Save(ctx, storage.EventKey, payload))

	data, err = store.Load(ctx, storage.EventKey)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// Keys are independent.
	data, err = store.Load(ctx, storage.BookingKey)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, storage.BookingKey, []byte(`[]`)))
	require.NoError(t, store.Save(ctx, storage.BookingKey, []byte(`[{"id":"b1"}]`)))

	data, err := store.Load(ctx, storage.BookingKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"b1"}]`), data)
}

func TestNewFileStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

package storage_test

import (
	"context"
	"testing"

	"ms-booking/internal/storage"
)

func setupBunStore(t *testing.T) *storage.BunStore {
	t.Helper()

	store, err := storage.NewBunStore(context.Background(), "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to set up test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBunStore_RoundTrip(t *testing.T) {
	store := setupBunStore(t)
	ctx := context.Background()

	data, err := store.Load(ctx, storage.EventKey)
	if err != nil {
		t.Fatalf("Failed to load missing snapshot: %v", err)
	}
	if data != nil {
		t.Errorf("Expected nil for missing snapshot, got %q", data)
	}

	payload := []byte(`[{"id":"1","title":"Music Festival"}]`)
	if err := store.Save(ctx, storage.EventKey, payload); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	data, err = store.Load(ctx, storage.EventKey)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Expected %q, got %q", payload, data)
	}
}

func TestBunStore_SaveUpserts(t *testing.T) {
	store := setupBunStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, storage.BookingKey, []byte(`[]`)); err != nil {
		t.Fatalf("Failed to save first snapshot: %v", err)
	}
	if err := store.Save(ctx, storage.BookingKey, []byte(`[{"id":"b1"}]`)); err != nil {
		t.Fatalf("Failed to overwrite snapshot: %v", err)
	}

	data, err := store.Load(ctx, storage.BookingKey)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if string(data) != `[{"id":"b1"}]` {
		t.Errorf("Expected overwritten snapshot, got %q", data)
	}
}

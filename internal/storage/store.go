package storage

import (
	"context"
)

// Snapshot keys for the two collections. The names are kept from the
// storefront's original persisted stores.
const (
	EventKey   = "event-storage"
	BookingKey = "booking-storage"
)

// Store persists whole-collection JSON snapshots. There are no partial or
// delta updates: the owning store saves its entire collection after every
// mutation and loads it once at startup.
//
// Load returns (nil, nil) when no snapshot exists yet for the key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

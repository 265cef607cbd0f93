package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Snapshot is the single-row-per-key table backing BunStore.
type Snapshot struct {
	bun.BaseModel `bun:"table:snapshots"`

	Key       string    `bun:"key,pk"`
	Data      []byte    `bun:"data"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// BunStore persists snapshots in a sqlite table through bun.
type BunStore struct {
	Bun *bun.DB
}

// NewBunStore opens (or creates) the sqlite database at path and ensures
// the snapshots table exists.
func NewBunStore(ctx context.Context, path string) (*BunStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = bunDB.NewCreateTable().
		Model((*Snapshot)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &BunStore{Bun: bunDB}, nil
}

func (b *BunStore) Load(ctx context.Context, key string) ([]byte, error) {
	var snap Snapshot
	err := b.Bun.NewSelect().
		Model(&snap).
		Where("key = ?", key).
		Limit(1).
		Scan(ctx)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return snap.Data, nil
}

func (b *BunStore) Save(ctx context.Context, key string, data []byte) error {
	snap := Snapshot{
		Key:       key,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := b.Bun.NewInsert().
		Model(&snap).
		On("CONFLICT (key) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (b *BunStore) Close() error {
	return b.Bun.Close()
}

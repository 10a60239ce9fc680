package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storepulse/internal/dbx"
)

// MetadataRepo is a fixed-schema key-value table. The session persister
// lives on top of it; anything else small and durable can share it.
type MetadataRepo struct {
	db dbx.DBTX
}

func NewMetadataRepo(db dbx.DBTX) *MetadataRepo {
	return &MetadataRepo{db: db}
}

// Get returns the stored value, or (nil, nil) when the key is absent.
func (r *MetadataRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get metadata[%s]: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for key, overwriting any prior value.
func (r *MetadataRepo) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set metadata[%s]: %w", key, err)
	}
	return nil
}

// Delete removes the key; deleting an absent key is not an error.
func (r *MetadataRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete metadata[%s]: %w", key, err)
	}
	return nil
}

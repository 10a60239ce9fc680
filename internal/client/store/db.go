// Package store is the client's local persistence layer: a small sqlite
// database holding the persisted session (metadata table) and cached
// analytics payloads for offline rendering (snapshots table).
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"storepulse/internal/client/store/migrations"
)

// DB wraps the sqlite handle and exposes the repositories built on it.
type DB struct {
	sql *sql.DB
}

// Open opens (creating if needed) the sqlite database at dsn and applies any
// pending embedded migrations.
func Open(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening local db: %w", err)
	}
	// One writer keeps sqlite happy and makes :memory: databases safe to
	// share across the pool.
	db.SetMaxOpenConns(1)
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating local db: %w", err)
	}
	return &DB{sql: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (d *DB) Close() error { return d.sql.Close() }

// Metadata returns the key-value repository.
func (d *DB) Metadata() *MetadataRepo { return NewMetadataRepo(d.sql) }

// Snapshots returns the cached-payload repository.
func (d *DB) Snapshots() *SnapshotRepo { return NewSnapshotRepo(d.sql) }

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storepulse/internal/common"
	"storepulse/internal/dbx"
)

// Snapshot kinds cached locally.
const (
	SnapshotDashboard = "dashboard"
	SnapshotInsights  = "insights"
)

// snapshotRetention bounds how long a cached payload survives without being
// refreshed. Stale periods would otherwise linger forever after the user
// switches reporting windows.
const snapshotRetention = 14 * 24 * time.Hour

// SnapshotRepo caches the last successfully fetched analytics payload per
// (kind, period) so the dashboard stays readable while the backend is down.
type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Put stores payload for (kind, period), replacing any previous snapshot, and
// prunes snapshots of the same kind that outlived the retention window. Both
// run in one transaction.
func (r *SnapshotRepo) Put(ctx context.Context, kind, period string, payload []byte, fetchedAt time.Time) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cutoff := fetchedAt.Add(-snapshotRetention).UTC()
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM snapshots WHERE kind = ? AND fetched_at < ?`, kind, cutoff); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO snapshots (kind, period, payload, fetched_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(kind, period) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
		`, kind, period, payload, fetchedAt.UTC())
		return err
	})
	if err != nil {
		return fmt.Errorf("put snapshot[%s,%s]: %w", kind, period, err)
	}
	return nil
}

// Get returns the cached payload and its fetch time, or common.ErrNotFound.
func (r *SnapshotRepo) Get(ctx context.Context, kind, period string) ([]byte, time.Time, error) {
	var payload []byte
	var fetchedAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM snapshots WHERE kind = ? AND period = ?`,
		kind, period).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, common.ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("get snapshot[%s,%s]: %w", kind, period, err)
	}
	return payload, fetchedAt, nil
}

// Clear wipes all cached snapshots. Called on logout so one merchant's data
// never leaks into another session.
func (r *SnapshotRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots`)
	if err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	return nil
}

package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Snapshot is one persisted JSON payload under a fixed key.
type Snapshot struct {
	Key       string
	Payload   []byte
	UpdatedAt time.Time
}

const getSnapshot = `
SELECT key, payload, updated_at FROM snapshots WHERE key = ?
`

func (q *Queries) GetSnapshot(ctx context.Context, key string) (Snapshot, error) {
	row := q.db.QueryRowContext(ctx, getSnapshot, key)
	var s Snapshot
	err := row.Scan(&s.Key, &s.Payload, &s.UpdatedAt)
	return s, err
}

const upsertSnapshot = `
INSERT INTO snapshots (key, payload, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
`

type UpsertSnapshotParams struct {
	Key     string
	Payload []byte
}

func (q *Queries) UpsertSnapshot(ctx context.Context, arg UpsertSnapshotParams) error {
	_, err := q.db.ExecContext(ctx, upsertSnapshot, arg.Key, arg.Payload)
	return err
}

const deleteSnapshot = `
DELETE FROM snapshots WHERE key = ?
`

func (q *Queries) DeleteSnapshot(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, deleteSnapshot, key)
	return err
}

const listSnapshotKeys = `
SELECT key FROM snapshots ORDER BY key
`

func (q *Queries) ListSnapshotKeys(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listSnapshotKeys)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

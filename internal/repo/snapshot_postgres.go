package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type PostgresSnapshotStore struct {
	db *sql.DB
}

func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

const upsertSnapshotQuery = `
	INSERT INTO snapshots (name, data, updated_at) VALUES ($1, $2, $3)
	ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
`

func (r *PostgresSnapshotStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	query := `SELECT data FROM snapshots WHERE name = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var data []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to select %s snapshot: %w", key, err)
	}
	return data, true, nil
}

func (r *PostgresSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, upsertSnapshotQuery, key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert %s snapshot: %w", key, err)
	}
	return nil
}

// SaveAll upserts every entry in one transaction.
func (r *PostgresSnapshotStore) SaveAll(ctx context.Context, entries map[string][]byte) error {
	for key := range entries {
		if key == "" {
			return ErrEmptyKey
		}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for key, data := range entries {
		if _, err := tx.ExecContext(ctx, upsertSnapshotQuery, key, string(data), now); err != nil {
			return fmt.Errorf("failed to upsert %s snapshot: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshots: %w", err)
	}
	return nil
}

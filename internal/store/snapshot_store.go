package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/jmoiron/sqlx"
)

// SnapshotStore loads and saves the live tournament as one unit. Load never
// fails for a missing snapshot, it returns a fresh default state instead.
type SnapshotStore interface {
	Load(ctx context.Context) (*tournament.State, error)
	Save(ctx context.Context, state *tournament.State) error
}

const (
	getSnapshotQuery    = "SELECT data FROM tournament_snapshots WHERE id = 1"
	upsertSnapshotQuery = `
		INSERT INTO tournament_snapshots (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
)

type SQLiteSnapshotStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLiteSnapshotStore(db *sqlx.DB) *SQLiteSnapshotStore {
	return &SQLiteSnapshotStore{db: db, now: time.Now}
}

func (s *SQLiteSnapshotStore) Load(ctx context.Context) (*tournament.State, error) {
	var data string
	err := s.db.GetContext(ctx, &data, getSnapshotQuery)
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.NewState(s.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return decodeSnapshot([]byte(data), s.now())
}

// Save replaces the snapshot inside a transaction, so readers see either the
// old or the new document.
func (s *SQLiteSnapshotStore) Save(ctx context.Context, state *tournament.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, upsertSnapshotQuery, string(data), s.now().UTC()); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return tx.Commit()
}

func decodeSnapshot(data []byte, now time.Time) (*tournament.State, error) {
	var state tournament.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	state.Normalize(now)
	return &state, nil
}

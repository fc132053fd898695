package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ArchivedTournament struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Date       string    `db:"date" json:"date"`
	TeamCount  int       `db:"team_count" json:"team_count"`
	WinnerName *string   `db:"winner_name" json:"winner_name"`
	Data       string    `db:"data" json:"-"`
	ArchivedAt time.Time `db:"archived_at" json:"archived_at"`
}

const (
	insertArchiveQuery = `
		INSERT INTO tournament_archive (id, name, date, team_count, winner_name, data, archived_at)
		VALUES (:id, :name, :date, :team_count, :winner_name, :data, :archived_at)
	`
	listArchiveQuery = `
		SELECT id, name, date, team_count, winner_name, archived_at
		FROM tournament_archive
		ORDER BY archived_at DESC
	`
	getArchiveQuery    = "SELECT * FROM tournament_archive WHERE id = ?"
	deleteArchiveQuery = "DELETE FROM tournament_archive WHERE id = ?"
)

type ArchiveStore struct {
	db *sqlx.DB
}

func NewArchiveStore(db *sqlx.DB) *ArchiveStore {
	return &ArchiveStore{db: db}
}

// Archive stores a copy of the finished tournament and returns its id.
func (s *ArchiveStore) Archive(ctx context.Context, state *tournament.State) (uuid.UUID, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode archive: %w", err)
	}

	entry := ArchivedTournament{
		ID:         uuid.New(),
		Name:       state.Config.Name,
		Date:       state.Config.Date,
		TeamCount:  len(state.Teams),
		Data:       string(data),
		ArchivedAt: time.Now().UTC(),
	}
	if state.Winner != nil {
		if team, err := state.Team(*state.Winner); err == nil {
			entry.WinnerName = &team.Name
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertArchiveQuery, entry); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert archive: %w", err)
	}
	return entry.ID, tx.Commit()
}

func (s *ArchiveStore) List(ctx context.Context) ([]ArchivedTournament, error) {
	archived := []ArchivedTournament{}
	err := s.db.SelectContext(ctx, &archived, listArchiveQuery)
	return archived, err
}

// Get returns the archived snapshot. A missing id yields sql.ErrNoRows.
func (s *ArchiveStore) Get(ctx context.Context, id uuid.UUID) (*tournament.State, error) {
	var entry ArchivedTournament
	if err := s.db.GetContext(ctx, &entry, getArchiveQuery, id); err != nil {
		return nil, err
	}
	return decodeSnapshot([]byte(entry.Data), entry.ArchivedAt)
}

func (s *ArchiveStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, deleteArchiveQuery, id)
	return err
}

package service

import (
	"context"
	"sync"
	"testing"

	"github.com/AdamBeresnev/beach-volley/internal/engine"
	"github.com/AdamBeresnev/beach-volley/internal/store"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	database.SetMaxOpenConns(1)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	t.Cleanup(func() { database.Close() })
	return database
}

type broadcast struct {
	room    string
	msgType string
}

type recordingHub struct {
	mu       sync.Mutex
	messages []broadcast
}

func (h *recordingHub) Broadcast(room, msgType string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, broadcast{room: room, msgType: msgType})
}

func (h *recordingHub) types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var types []string
	for _, m := range h.messages {
		types = append(types, m.msgType)
	}
	return types
}

type testEnv struct {
	db          *sqlx.DB
	snapshots   *store.SQLiteSnapshotStore
	hub         *recordingHub
	state       *StateManager
	tournaments *TournamentService
	matches     *MatchService
	rankings    *RankingService
	revenue     *RevenueService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	snapshots := store.NewSQLiteSnapshotStore(db)
	hub := &recordingHub{}
	state, err := NewStateManager(context.Background(), snapshots, hub)
	require.NoError(t, err)

	return &testEnv{
		db:          db,
		snapshots:   snapshots,
		hub:         hub,
		state:       state,
		tournaments: NewTournamentService(state, store.NewArchiveStore(db), engine.NewRand(1)),
		matches:     NewMatchService(state, engine.NewRand(2), hub),
		rankings:    NewRankingService(state),
		revenue:     NewRevenueService(db, store.NewRevenueStore(db), state, 2000),
	}
}

// registerTeams adds n teams of two fresh athletes each and names the
// tournament so it can be launched.
func (e *testEnv) registerTeams(t *testing.T, n int) []tournament.Team {
	t.Helper()
	ctx := context.Background()

	teams := make([]tournament.Team, 0, n)
	for i := 1; i <= n; i++ {
		a1, err := e.tournaments.RegisterAthlete(ctx, athleteName(i, "A"))
		require.NoError(t, err)
		a2, err := e.tournaments.RegisterAthlete(ctx, athleteName(i, "B"))
		require.NoError(t, err)
		team, err := e.tournaments.RegisterTeam(ctx, "", a1.ID, a2.ID)
		require.NoError(t, err)
		teams = append(teams, team)
	}

	st, err := e.tournaments.State(ctx)
	require.NoError(t, err)
	cfg := st.Config
	cfg.Name = "Torneo di Prova"
	require.NoError(t, e.tournaments.UpdateConfig(ctx, cfg))
	return teams
}

func athleteName(i int, suffix string) string {
	return "Player" + string(rune('0'+i)) + suffix + " Rossi"
}

func firstPendingMatch(t *testing.T, st *tournament.State) uuid.UUID {
	t.Helper()
	for _, g := range st.Groups {
		for _, m := range g.Matches {
			if !m.Confirmed {
				return m.ID
			}
		}
	}
	for _, m := range st.Bracket {
		if !m.Confirmed {
			return m.ID
		}
	}
	t.Fatal("no pending match")
	return uuid.Nil
}

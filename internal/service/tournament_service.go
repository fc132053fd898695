package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/beach-volley/internal/engine"
	"github.com/AdamBeresnev/beach-volley/internal/importer"
	"github.com/AdamBeresnev/beach-volley/internal/store"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

type TournamentService struct {
	state   *StateManager
	archive *store.ArchiveStore
	rng     engine.Rand
	now     func() time.Time
}

// NewTournamentService wires the lifecycle operations. rng is only used
// while the state lock is held.
func NewTournamentService(state *StateManager, archive *store.ArchiveStore, rng engine.Rand) *TournamentService {
	return &TournamentService{state: state, archive: archive, rng: rng, now: time.Now}
}

func (s *TournamentService) State(ctx context.Context) (*tournament.State, error) {
	return s.state.Snapshot()
}

func (s *TournamentService) RegisterAthlete(ctx context.Context, name string) (tournament.Athlete, error) {
	var athlete tournament.Athlete
	err := s.state.Mutate(ctx, func(st *tournament.State) error {
		a, err := st.RegisterAthlete(name)
		if err != nil {
			return err
		}
		athlete = *a
		return nil
	})
	return athlete, err
}

type ImportReport struct {
	Registered []tournament.Athlete `json:"registered"`
	Skipped    []importer.Skipped   `json:"skipped"`
}

// ImportAthletes registers every parsed name in one save. Names already on
// the roster are reported as duplicates instead of failing the import.
func (s *TournamentService) ImportAthletes(ctx context.Context, parsed importer.Result) (ImportReport, error) {
	report := ImportReport{Registered: []tournament.Athlete{}, Skipped: parsed.Skipped}

	err := s.state.Mutate(ctx, func(st *tournament.State) error {
		for _, name := range parsed.Names {
			a, err := st.RegisterAthlete(name)
			if errors.Is(err, tournament.ErrDuplicateAthlete) {
				report.Skipped = append(report.Skipped, importer.Skipped{Value: name, Reason: importer.SkipDuplicate})
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to import %q: %w", name, err)
			}
			report.Registered = append(report.Registered, *a)
		}
		return nil
	})
	if err != nil {
		return ImportReport{}, err
	}
	return report, nil
}

func (s *TournamentService) RegisterTeam(ctx context.Context, name string, athlete1, athlete2 uuid.UUID) (tournament.Team, error) {
	var team tournament.Team
	err := s.state.Mutate(ctx, func(st *tournament.State) error {
		t, err := st.RegisterTeam(name, athlete1, athlete2)
		if err != nil {
			return err
		}
		team = *t
		return nil
	})
	return team, err
}

func (s *TournamentService) RemoveTeam(ctx context.Context, id uuid.UUID) error {
	return s.state.Mutate(ctx, func(st *tournament.State) error {
		return st.RemoveTeam(id)
	})
}

func (s *TournamentService) UpdateConfig(ctx context.Context, cfg tournament.Config) error {
	return s.state.Mutate(ctx, func(st *tournament.State) error {
		return st.UpdateConfig(cfg)
	})
}

func (s *TournamentService) SetSimulationToRanking(ctx context.Context, enabled bool) error {
	return s.state.Mutate(ctx, func(st *tournament.State) error {
		st.SimulationToRanking = enabled
		return nil
	})
}

func (s *TournamentService) StartGroupStage(ctx context.Context, groupCount int) error {
	return s.state.Mutate(ctx, func(st *tournament.State) error {
		if err := engine.StartGroupStage(st, s.rng, groupCount); err != nil {
			return err
		}
		slog.Info("group stage started", "tournament", st.Config.Name, "teams", len(st.Teams), "groups", len(st.Groups))
		return nil
	})
}

// StartElimination builds the bracket and returns the qualifiers left out of
// the first round.
func (s *TournamentService) StartElimination(ctx context.Context) ([]uuid.UUID, error) {
	var dropped []uuid.UUID
	err := s.state.Mutate(ctx, func(st *tournament.State) error {
		var err error
		dropped, err = engine.StartElimination(st, s.rng)
		if err != nil {
			return err
		}
		for _, id := range dropped {
			slog.Warn("qualifier dropped from the bracket", "team_id", id)
		}
		slog.Info("elimination started", "tournament", st.Config.Name, "matches", len(st.Bracket))
		return nil
	})
	return dropped, err
}

func (s *TournamentService) Proclaim(ctx context.Context) (*tournament.State, error) {
	err := s.state.Mutate(ctx, func(st *tournament.State) error {
		if err := engine.Proclaim(st); err != nil {
			return err
		}
		slog.Info("tournament proclaimed", "tournament", st.Config.Name, "winner", *st.Winner)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.state.Snapshot()
}

// NewTournament archives a proclaimed tournament and resets the state for
// the next one. The returned id is uuid.Nil when nothing was archived.
func (s *TournamentService) NewTournament(ctx context.Context) (uuid.UUID, error) {
	archiveID := uuid.Nil
	err := s.state.Mutate(ctx, func(st *tournament.State) error {
		if st.Phase == tournament.PhaseProclamation && s.archive != nil {
			id, err := s.archive.Archive(ctx, st)
			if err != nil {
				return err
			}
			archiveID = id
		}
		engine.NewTournament(st, s.now())
		return nil
	})
	if err != nil && archiveID != uuid.Nil {
		// The reset was not saved, so the tournament is still live.
		if delErr := s.archive.Delete(context.WithoutCancel(ctx), archiveID); delErr != nil {
			slog.Error("failed to drop archive of unsaved reset", "archive_id", archiveID, "error", delErr)
		}
		return uuid.Nil, err
	}
	return archiveID, err
}

func (s *TournamentService) Archives(ctx context.Context) ([]store.ArchivedTournament, error) {
	if s.archive == nil {
		return []store.ArchivedTournament{}, nil
	}
	return s.archive.List(ctx)
}

func (s *TournamentService) ArchivedState(ctx context.Context, id uuid.UUID) (*tournament.State, error) {
	if s.archive == nil {
		return nil, sql.ErrNoRows
	}
	return s.archive.Get(ctx, id)
}

type StandingsView struct {
	Group tournament.Group  `json:"group"`
	Teams []tournament.Team `json:"teams"`
}

func (s *TournamentService) Standings(ctx context.Context) ([]StandingsView, error) {
	st, err := s.state.Snapshot()
	if err != nil {
		return nil, err
	}
	views := make([]StandingsView, 0, len(st.Groups))
	for i := range st.Groups {
		teams, err := engine.GroupStandings(st, &st.Groups[i])
		if err != nil {
			return nil, err
		}
		views = append(views, StandingsView{Group: st.Groups[i], Teams: teams})
	}
	return views, nil
}

package service

import (
	"context"
	"log/slog"

	"github.com/AdamBeresnev/beach-volley/internal/engine"
	"github.com/AdamBeresnev/beach-volley/internal/live"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

type MatchService struct {
	state *StateManager
	rng   engine.Rand
	hub   Broadcaster
}

func NewMatchService(state *StateManager, rng engine.Rand, hub Broadcaster) *MatchService {
	if hub == nil {
		hub = nopBroadcaster{}
	}
	return &MatchService{state: state, rng: rng, hub: hub}
}

type MatchData struct {
	Match tournament.Match `json:"match"`
	Team1 *tournament.Team `json:"team1"`
	Team2 *tournament.Team `json:"team2"`
	// Feeders are the bracket matches whose winners meet here.
	Feeders []uuid.UUID `json:"feeders"`
	// Next lists the matches this match's winner went on to play.
	Next []uuid.UUID `json:"next"`
}

func (s *MatchService) GetMatchViewData(ctx context.Context, matchID uuid.UUID) (*MatchData, error) {
	st, err := s.state.Snapshot()
	if err != nil {
		return nil, err
	}
	m, err := st.FindMatch(matchID)
	if err != nil {
		return nil, err
	}

	data := &MatchData{Match: *m, Feeders: []uuid.UUID{}, Next: []uuid.UUID{}}
	if t, err := st.Team(m.Team1ID); err == nil {
		data.Team1 = t
	}
	if t, err := st.Team(m.Team2ID); err == nil && !m.IsBye {
		data.Team2 = t
	}

	if m.Phase == tournament.EliminationMatch {
		g, err := engine.NewBracketGraph(st.Bracket)
		if err != nil {
			return nil, err
		}
		if data.Feeders, err = g.Feeders(m.ID); err != nil {
			return nil, err
		}
		path, err := g.PathOf(m.ID)
		if err != nil {
			return nil, err
		}
		for _, next := range path[1:] {
			data.Next = append(data.Next, next.ID)
		}
	}
	return data, nil
}

// Confirm records a result entered by the organizer.
func (s *MatchService) Confirm(ctx context.Context, matchID uuid.UUID, sets []tournament.SetScore) (tournament.Match, error) {
	var confirmed tournament.Match
	err := s.state.Mutate(ctx, func(st *tournament.State) error {
		m, err := engine.ConfirmMatch(st, matchID, sets)
		if err != nil {
			return err
		}
		confirmed = m
		return nil
	})
	if err != nil {
		return tournament.Match{}, err
	}
	s.hub.Broadcast(live.RoomTournament, live.TypeMatchUpdated, confirmed)
	return confirmed, nil
}

func (s *MatchService) Simulate(ctx context.Context, matchID uuid.UUID) (tournament.Match, error) {
	var simulated tournament.Match
	err := s.state.Mutate(ctx, func(st *tournament.State) error {
		m, err := engine.SimulatePendingMatch(st, s.rng, matchID)
		if err != nil {
			return err
		}
		simulated = m
		return nil
	})
	if err != nil {
		return tournament.Match{}, err
	}
	s.hub.Broadcast(live.RoomTournament, live.TypeMatchUpdated, simulated)
	return simulated, nil
}

func (s *MatchService) SimulateGroup(ctx context.Context, groupIndex int) (int, error) {
	return s.simulateBatch(ctx, "group", func(st *tournament.State) (int, error) {
		return engine.SimulateGroup(st, s.rng, groupIndex)
	})
}

func (s *MatchService) SimulateAllGroups(ctx context.Context) (int, error) {
	return s.simulateBatch(ctx, "all groups", func(st *tournament.State) (int, error) {
		return engine.SimulateAllGroups(st, s.rng)
	})
}

// SimulateBracket plays every open elimination match, round after round,
// until the final is confirmed.
func (s *MatchService) SimulateBracket(ctx context.Context) (int, error) {
	return s.simulateBatch(ctx, "bracket", func(st *tournament.State) (int, error) {
		return engine.SimulateBracket(st, s.rng)
	})
}

func (s *MatchService) simulateBatch(ctx context.Context, scope string, run func(*tournament.State) (int, error)) (int, error) {
	var played int
	err := s.state.Mutate(ctx, func(st *tournament.State) error {
		n, err := run(st)
		if err != nil {
			return err
		}
		played = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	slog.Info("matches simulated", "scope", scope, "count", played)
	return played, nil
}

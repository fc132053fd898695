package service

import (
	"context"
	"encoding/gob"

	"github.com/AdamBeresnev/beach-volley/internal/engine"
	"github.com/AdamBeresnev/beach-volley/internal/live"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

func init() {
	gob.Register(engine.Scoreboard{})
}

// ScoreboardService keeps one live scoreboard per match in the organizer's
// session. Submitting a board confirms the match like a typed result.
type ScoreboardService struct {
	sessions *scs.SessionManager
	state    *StateManager
	matches  *MatchService
	hub      Broadcaster
}

func NewScoreboardService(sessions *scs.SessionManager, state *StateManager, matches *MatchService, hub Broadcaster) *ScoreboardService {
	if hub == nil {
		hub = nopBroadcaster{}
	}
	return &ScoreboardService{sessions: sessions, state: state, matches: matches, hub: hub}
}

func scoreboardKey(matchID uuid.UUID) string {
	return "scoreboard:" + matchID.String()
}

// Board returns the session's board for the match, starting a fresh one
// when none is kept yet.
func (s *ScoreboardService) Board(ctx context.Context, matchID uuid.UUID) (engine.Scoreboard, error) {
	if _, err := s.playable(matchID); err != nil {
		return engine.Scoreboard{}, err
	}
	if b, ok := s.sessions.Get(ctx, scoreboardKey(matchID)).(engine.Scoreboard); ok {
		return b, nil
	}
	return engine.NewScoreboard(matchID), nil
}

func (s *ScoreboardService) AddPoint(ctx context.Context, matchID uuid.UUID, side tournament.Side) (engine.Scoreboard, error) {
	cfg, err := s.playable(matchID)
	if err != nil {
		return engine.Scoreboard{}, err
	}
	return s.update(ctx, matchID, func(b *engine.Scoreboard) error {
		_, err := b.AddPoint(side, cfg.MaxPoints, cfg.SetFormat)
		return err
	})
}

func (s *ScoreboardService) UndoPoint(ctx context.Context, matchID uuid.UUID, side tournament.Side) (engine.Scoreboard, error) {
	return s.update(ctx, matchID, func(b *engine.Scoreboard) error {
		return b.UndoPoint(side)
	})
}

func (s *ScoreboardService) SetServing(ctx context.Context, matchID uuid.UUID, side tournament.Side) (engine.Scoreboard, error) {
	return s.update(ctx, matchID, func(b *engine.Scoreboard) error {
		return b.SetServing(side)
	})
}

func (s *ScoreboardService) ResetSet(ctx context.Context, matchID uuid.UUID) (engine.Scoreboard, error) {
	return s.update(ctx, matchID, func(b *engine.Scoreboard) error {
		b.ResetSet()
		return nil
	})
}

// Discard drops the board without touching the match.
func (s *ScoreboardService) Discard(ctx context.Context, matchID uuid.UUID) {
	s.sessions.Remove(ctx, scoreboardKey(matchID))
}

// Submit confirms the match with the board's sets. The board is kept when
// the result is rejected so scoring can continue.
func (s *ScoreboardService) Submit(ctx context.Context, matchID uuid.UUID) (tournament.Match, error) {
	b, err := s.Board(ctx, matchID)
	if err != nil {
		return tournament.Match{}, err
	}
	m, err := s.matches.Confirm(ctx, matchID, b.Submit())
	if err != nil {
		return tournament.Match{}, err
	}
	s.sessions.Remove(ctx, scoreboardKey(matchID))
	return m, nil
}

func (s *ScoreboardService) update(ctx context.Context, matchID uuid.UUID, fn func(*engine.Scoreboard) error) (engine.Scoreboard, error) {
	b, err := s.Board(ctx, matchID)
	if err != nil {
		return engine.Scoreboard{}, err
	}
	b.Sets = append([]tournament.SetScore{}, b.Sets...)
	if err := fn(&b); err != nil {
		return engine.Scoreboard{}, err
	}
	s.sessions.Put(ctx, scoreboardKey(matchID), b)
	s.hub.Broadcast(live.ScoreboardRoom(matchID.String()), live.TypeScoreboardUpdated, b)
	return b, nil
}

// playable checks the match can still be scored and returns the
// tournament's scoring rules.
func (s *ScoreboardService) playable(matchID uuid.UUID) (tournament.Config, error) {
	st, err := s.state.Snapshot()
	if err != nil {
		return tournament.Config{}, err
	}
	m, err := st.FindMatch(matchID)
	if err != nil {
		return tournament.Config{}, err
	}
	if m.IsBye {
		return tournament.Config{}, tournament.ErrMatchNotPlayable
	}
	if m.Confirmed {
		return tournament.Config{}, tournament.ErrMatchConfirmed
	}
	return st.Config, nil
}

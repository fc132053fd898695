package service

import (
	"context"

	"github.com/AdamBeresnev/beach-volley/internal/engine"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

type RankingService struct {
	state *StateManager
}

func NewRankingService(state *StateManager) *RankingService {
	return &RankingService{state: state}
}

func (s *RankingService) GlobalRanking(ctx context.Context) ([]engine.RankingRow, error) {
	st, err := s.state.Snapshot()
	if err != nil {
		return nil, err
	}
	return engine.GlobalRanking(st), nil
}

type AthleteProfile struct {
	Athlete tournament.Athlete `json:"athlete"`
	Score   int                `json:"score"`
	Gold    int                `json:"gold"`
	Silver  int                `json:"silver"`
	Bronze  int                `json:"bronze"`
	// Team is the athlete's team in the running tournament, if any.
	Team *tournament.Team `json:"team"`
}

func (s *RankingService) AthleteProfile(ctx context.Context, id uuid.UUID) (*AthleteProfile, error) {
	st, err := s.state.Snapshot()
	if err != nil {
		return nil, err
	}
	a, err := st.Athlete(id)
	if err != nil {
		return nil, err
	}

	gold, silver, bronze := a.Stats.Medals()
	return &AthleteProfile{
		Athlete: *a,
		Score:   engine.RankingScore(a, max(len(st.Teams), 4)),
		Gold:    gold,
		Silver:  silver,
		Bronze:  bronze,
		Team:    st.TeamOf(a.ID),
	}, nil
}

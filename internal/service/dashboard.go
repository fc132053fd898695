package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/beach-volley/internal/engine"
	"github.com/AdamBeresnev/beach-volley/internal/revenue"
	"github.com/AdamBeresnev/beach-volley/internal/store"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"golang.org/x/sync/errgroup"
)

const dashboardRankingSize = 10

type Dashboard struct {
	Phase          tournament.Phase           `json:"phase"`
	Name           string                     `json:"name"`
	Teams          int                        `json:"teams"`
	GroupConfirmed int                        `json:"group_matches_confirmed"`
	GroupTotal     int                        `json:"group_matches_total"`
	TopAthletes    []engine.RankingRow        `json:"top_athletes"`
	Revenue        *revenue.Summary           `json:"revenue"`
	Archives       []store.ArchivedTournament `json:"archives"`
}

type DashboardService struct {
	tournaments *TournamentService
	rankings    *RankingService
	revenue     *RevenueService
}

func NewDashboardService(tournaments *TournamentService, rankings *RankingService, revenue *RevenueService) *DashboardService {
	return &DashboardService{tournaments: tournaments, rankings: rankings, revenue: revenue}
}

// Load gathers the overview page data concurrently. A tournament without a
// name has no ledger yet, so its revenue is left empty.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	st, err := s.tournaments.State(ctx)
	if err != nil {
		return nil, err
	}
	confirmed, total := st.GroupMatchCount()
	d := &Dashboard{
		Phase:          st.Phase,
		Name:           st.Config.Name,
		Teams:          len(st.Teams),
		GroupConfirmed: confirmed,
		GroupTotal:     total,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.rankings.GlobalRanking(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load ranking: %w", err)
		}
		d.TopAthletes = rows[:min(len(rows), dashboardRankingSize)]
		return nil
	})

	g.Go(func() error {
		data, err := s.revenue.Current(gCtx)
		if errors.Is(err, tournament.ErrMissingName) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load revenue: %w", err)
		}
		d.Revenue = &data.Summary
		return nil
	})

	g.Go(func() error {
		archives, err := s.tournaments.Archives(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load archives: %w", err)
		}
		d.Archives = archives
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

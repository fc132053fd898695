package engine

import (
	"sort"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

const pointsPerPosition = 10

// ApplyRankingResults writes a finished tournament into the career stats of
// every athlete that took part. Team counters are merged once per athlete.
// Podium athletes get their position, everybody else is recorded at half the
// field size as a coarse placement. With propagate false nothing changes.
func ApplyRankingResults(state *tournament.State, podium []tournament.PodiumEntry, propagate bool) error {
	if !propagate {
		return nil
	}

	positions := make(map[uuid.UUID]int, len(podium))
	for _, p := range podium {
		if _, err := state.Team(p.TeamID); err != nil {
			return err
		}
		positions[p.TeamID] = p.Position
	}
	for _, team := range state.Teams {
		for _, id := range team.AthleteIDs {
			if _, err := state.Athlete(id); err != nil {
				return err
			}
		}
	}

	teamCount := len(state.Teams)
	name := state.Config.Name
	visited := make(map[uuid.UUID]bool)

	for _, team := range state.Teams {
		position, onPodium := positions[team.ID]
		for _, id := range team.AthleteIDs {
			if visited[id] {
				continue
			}
			visited[id] = true

			athlete, _ := state.Athlete(id)
			stats := &athlete.Stats
			stats.SetsWon += team.SetsWon
			stats.SetsLost += team.SetsLost
			stats.PointsScored += team.PointsScored
			stats.PointsConceded += team.PointsConceded
			stats.Tournaments++

			if !onPodium {
				stats.Losses++
				stats.History = append(stats.History, tournament.HistoryEntry{
					Tournament: name,
					Position:   teamCount / 2,
					TeamCount:  teamCount,
				})
				continue
			}

			if position == 1 {
				stats.Wins++
			} else {
				stats.Losses++
			}
			stats.History = append(stats.History, tournament.HistoryEntry{
				Tournament: name,
				Position:   position,
				TeamCount:  teamCount,
			})
		}
	}
	return nil
}

// RankingPoints is N*10 for the winner of an N team tournament, ten less per
// position after that, never below zero.
func RankingPoints(position, teamCount int) int {
	return max(0, teamCount*pointsPerPosition-(position-1)*pointsPerPosition)
}

// RankingScore sums the ranking points of the athlete's history. Entries
// written before the field size was recorded use currentTeamCount.
func RankingScore(athlete *tournament.Athlete, currentTeamCount int) int {
	total := 0
	for _, h := range athlete.Stats.History {
		n := h.TeamCount
		if n == 0 {
			n = currentTeamCount
		}
		total += RankingPoints(h.Position, n)
	}
	return total
}

type RankingRow struct {
	AthleteID    uuid.UUID `json:"athlete_id"`
	Name         string    `json:"name"`
	Points       int       `json:"points"`
	Tournaments  int       `json:"tournaments"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	Gold         int       `json:"gold"`
	Silver       int       `json:"silver"`
	Bronze       int       `json:"bronze"`
	SetsWon      int       `json:"sets_won"`
	SetsLost     int       `json:"sets_lost"`
	PointsPerSet float64   `json:"points_per_set"`
	SetRatio     float64   `json:"set_ratio"`
	WinRate      float64   `json:"win_rate"`
	BestPosition int       `json:"best_position"`
}

// GlobalRanking lists every athlete with at least one tournament, best
// first by ranking points, golds, silvers and win rate.
func GlobalRanking(state *tournament.State) []RankingRow {
	currentTeamCount := max(len(state.Teams), 4)

	rows := make([]RankingRow, 0, len(state.Athletes))
	for i := range state.Athletes {
		a := &state.Athletes[i]
		s := a.Stats
		if s.Tournaments == 0 {
			continue
		}
		gold, silver, bronze := s.Medals()
		rows = append(rows, RankingRow{
			AthleteID:    a.ID,
			Name:         a.Name,
			Points:       RankingScore(a, currentTeamCount),
			Tournaments:  s.Tournaments,
			Wins:         s.Wins,
			Losses:       s.Losses,
			Gold:         gold,
			Silver:       silver,
			Bronze:       bronze,
			SetsWon:      s.SetsWon,
			SetsLost:     s.SetsLost,
			PointsPerSet: float64(s.PointsScored) / float64(max(s.SetsWon+s.SetsLost, 1)),
			SetRatio:     float64(s.SetsWon) / float64(max(s.SetsLost, 1)),
			WinRate:      float64(s.Wins) / float64(s.Tournaments) * 100,
			BestPosition: bestPosition(s.History),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Gold != b.Gold {
			return a.Gold > b.Gold
		}
		if a.Silver != b.Silver {
			return a.Silver > b.Silver
		}
		return a.WinRate > b.WinRate
	})
	return rows
}

func bestPosition(history []tournament.HistoryEntry) int {
	best := 0
	for _, h := range history {
		if best == 0 || h.Position < best {
			best = h.Position
		}
	}
	return best
}

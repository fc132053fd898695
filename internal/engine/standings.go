package engine

import (
	"fmt"
	"sort"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

const (
	winPoints  = 3
	lossPoints = 1
)

// ApplyStandings folds a confirmed match into both teams' counters. It is
// purely additive, so the caller must apply each match exactly once.
func ApplyStandings(t1, t2 *tournament.Team, m *tournament.Match) error {
	if !m.Confirmed || m.WinnerID == nil {
		return tournament.ErrMatchNotConfirmed
	}
	if m.IsBye {
		return tournament.ErrMatchNotPlayable
	}
	if t1.ID == m.Team2ID && t2.ID == m.Team1ID {
		t1, t2 = t2, t1
	}
	if t1.ID != m.Team1ID || t2.ID != m.Team2ID {
		return tournament.ErrTeamMismatch
	}

	points1, points2 := m.PointTotals()

	t1.SetsWon += m.SetsWon1
	t1.SetsLost += m.SetsWon2
	t1.PointsScored += points1
	t1.PointsConceded += points2

	t2.SetsWon += m.SetsWon2
	t2.SetsLost += m.SetsWon1
	t2.PointsScored += points2
	t2.PointsConceded += points1

	winner, loser := t1, t2
	if *m.WinnerID == t2.ID {
		winner, loser = t2, t1
	}
	winner.Points += winPoints
	winner.Wins++
	loser.Points += lossPoints
	loser.Losses++
	return nil
}

// RankTeams orders teams by points, wins, set difference and point
// difference. Equal teams keep their input order.
func RankTeams(teams []tournament.Team) []tournament.Team {
	ranked := make([]tournament.Team, len(teams))
	copy(ranked, teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.SetDiff() != b.SetDiff() {
			return a.SetDiff() > b.SetDiff()
		}
		return a.PointDiff() > b.PointDiff()
	})
	return ranked
}

// GroupStandings computes the ranking of one group from the current team
// counters. Teams are taken in registration order before sorting.
func GroupStandings(state *tournament.State, group *tournament.Group) ([]tournament.Team, error) {
	members := make(map[uuid.UUID]bool, len(group.TeamIDs))
	for _, id := range group.TeamIDs {
		members[id] = true
	}

	teams := make([]tournament.Team, 0, len(group.TeamIDs))
	for _, t := range state.Teams {
		if members[t.ID] {
			teams = append(teams, t)
			delete(members, t.ID)
		}
	}
	for _, id := range group.TeamIDs {
		if members[id] {
			return nil, fmt.Errorf("%w: %s", tournament.ErrTeamNotFound, id)
		}
	}
	return RankTeams(teams), nil
}

package engine

import (
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

// ResolveMatch validates the submitted sets, records them on the match and
// marks it confirmed. On error the match is left untouched.
//
// Sets scored (0, 0) count as not played and are dropped before anything else
// is checked.
func ResolveMatch(m *tournament.Match, sets []tournament.SetScore, format tournament.SetFormat) error {
	if m.Confirmed {
		return tournament.ErrMatchConfirmed
	}
	if m.IsBye || m.Team1ID == uuid.Nil || m.Team2ID == uuid.Nil {
		return tournament.ErrMatchNotPlayable
	}

	played, won1, won2, err := tallySets(sets, format)
	if err != nil {
		return err
	}

	winner := m.Team1ID
	if won2 > won1 {
		winner = m.Team2ID
	}

	m.Sets = played
	m.SetsWon1 = won1
	m.SetsWon2 = won2
	m.WinnerID = &winner
	m.Confirmed = true
	return nil
}

func tallySets(sets []tournament.SetScore, format tournament.SetFormat) ([]tournament.SetScore, int, int, error) {
	played := make([]tournament.SetScore, 0, len(sets))
	for _, s := range sets {
		if s.A < 0 || s.B < 0 {
			return nil, 0, 0, tournament.ErrNegativePoints
		}
		if s.Played() {
			played = append(played, s)
		}
	}

	if len(played) == 0 {
		return nil, 0, 0, tournament.ErrNoSets
	}
	if len(played) > format.MaxSets() {
		return nil, 0, 0, tournament.ErrTooManySets
	}

	var won1, won2 int
	for _, s := range played {
		switch {
		case s.A > s.B:
			won1++
		case s.B > s.A:
			won2++
		default:
			return nil, 0, 0, tournament.ErrTiedSet
		}
	}

	if won1 == won2 {
		return nil, 0, 0, tournament.ErrTiedSetWins
	}
	return played, won1, won2, nil
}

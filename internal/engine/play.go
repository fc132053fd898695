package engine

import (
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

// ConfirmMatch resolves the match with the submitted sets and applies the
// standings in one step. Confirming an elimination match may open the next
// round. Nothing changes when an error is returned.
func ConfirmMatch(state *tournament.State, matchID uuid.UUID, sets []tournament.SetScore) (tournament.Match, error) {
	return playMatch(state, matchID, func(m *tournament.Match) error {
		return ResolveMatch(m, sets, state.Config.SetFormat)
	})
}

// SimulatePendingMatch is ConfirmMatch with random sets.
func SimulatePendingMatch(state *tournament.State, rng Rand, matchID uuid.UUID) (tournament.Match, error) {
	return playMatch(state, matchID, func(m *tournament.Match) error {
		return SimulateMatch(rng, m, state.Config.MaxPoints, state.Config.SetFormat)
	})
}

func playMatch(state *tournament.State, matchID uuid.UUID, resolve func(*tournament.Match) error) (tournament.Match, error) {
	m, err := state.FindMatch(matchID)
	if err != nil {
		return tournament.Match{}, err
	}
	if err := checkMatchPhase(state, m); err != nil {
		return tournament.Match{}, err
	}

	t1, err := state.Team(m.Team1ID)
	if err != nil {
		return tournament.Match{}, err
	}
	t2, err := state.Team(m.Team2ID)
	if err != nil {
		return tournament.Match{}, err
	}

	resolved := *m
	if err := resolve(&resolved); err != nil {
		return tournament.Match{}, err
	}
	team1, team2 := *t1, *t2
	if err := ApplyStandings(&team1, &team2, &resolved); err != nil {
		return tournament.Match{}, err
	}

	// The next round is built on a copy so a broken bracket leaves the
	// state as it was.
	var bracket []tournament.Match
	if resolved.Phase == tournament.EliminationMatch {
		bracket = make([]tournament.Match, len(state.Bracket))
		copy(bracket, state.Bracket)
		for i := range bracket {
			if bracket[i].ID == resolved.ID {
				bracket[i] = resolved
			}
		}
		if bracket, err = AdvanceBracketRound(bracket); err != nil {
			return tournament.Match{}, err
		}
	}

	*t1, *t2 = team1, team2
	*m = resolved
	if bracket != nil {
		state.Bracket = bracket
	}
	return resolved, nil
}

func checkMatchPhase(state *tournament.State, m *tournament.Match) error {
	switch m.Phase {
	case tournament.GroupMatch:
		if state.Phase != tournament.PhaseGroupStage {
			return tournament.ErrWrongPhase
		}
	case tournament.EliminationMatch:
		if state.Phase != tournament.PhaseElimination {
			return tournament.ErrWrongPhase
		}
	}
	return nil
}

// SimulateGroup simulates every open match of one group, applying standings
// after each match before the next one is played.
func SimulateGroup(state *tournament.State, rng Rand, groupIndex int) (int, error) {
	if groupIndex < 0 || groupIndex >= len(state.Groups) {
		return 0, tournament.ErrMatchNotFound
	}
	var pending []uuid.UUID
	for _, m := range state.Groups[groupIndex].Matches {
		if !m.Confirmed {
			pending = append(pending, m.ID)
		}
	}
	return simulateAll(state, rng, pending)
}

// SimulateAllGroups simulates every open group match.
func SimulateAllGroups(state *tournament.State, rng Rand) (int, error) {
	total := 0
	for gi := range state.Groups {
		n, err := SimulateGroup(state, rng, gi)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// SimulateBracket plays the bracket out round after round until the final
// is confirmed.
func SimulateBracket(state *tournament.State, rng Rand) (int, error) {
	total := 0
	for !IsTournamentComplete(state.Bracket) {
		_, round := LastRound(state.Bracket)
		var pending []uuid.UUID
		for _, m := range round {
			if !m.Confirmed {
				pending = append(pending, m.ID)
			}
		}
		if len(pending) == 0 {
			return total, tournament.ErrBracketIncomplete
		}
		n, err := simulateAll(state, rng, pending)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func simulateAll(state *tournament.State, rng Rand, matchIDs []uuid.UUID) (int, error) {
	for i, id := range matchIDs {
		if _, err := SimulatePendingMatch(state, rng, id); err != nil {
			return i, err
		}
	}
	return len(matchIDs), nil
}

package engine

import (
	"fmt"
	"sort"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

// BuildBracket shuffles the qualifiers and pairs them in order into the
// first round. An odd qualifier left over is returned as dropped.
func BuildBracket(rng Rand, qualifiers []uuid.UUID) (matches []tournament.Match, dropped []uuid.UUID) {
	shuffled := make([]uuid.UUID, len(qualifiers))
	copy(shuffled, qualifiers)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	matches = make([]tournament.Match, 0, len(shuffled)/2)
	for i := 0; i+1 < len(shuffled); i += 2 {
		matches = append(matches, tournament.NewEliminationMatch(1, len(matches)+1, shuffled[i], shuffled[i+1]))
	}
	if len(shuffled)%2 == 1 {
		dropped = append(dropped, shuffled[len(shuffled)-1])
	}
	return matches, dropped
}

// LastRound returns the number and the matches of the latest round, sorted
// by their order in the round.
func LastRound(bracket []tournament.Match) (int, []tournament.Match) {
	if len(bracket) == 0 {
		return 0, nil
	}
	round := 0
	for _, m := range bracket {
		round = max(round, m.Round)
	}
	return round, RoundMatches(bracket, round)
}

func RoundMatches(bracket []tournament.Match, round int) []tournament.Match {
	var matches []tournament.Match
	for _, m := range bracket {
		if m.Round == round {
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Order < matches[j].Order
	})
	return matches
}

// AdvanceBracketRound appends the next round once every match of the last
// round is confirmed. Winners are paired in match order. With an odd number
// of winners the last one gets a bye into the following round.
//
// The bracket is returned unchanged while the round is still open or once
// only the champion is left.
func AdvanceBracketRound(bracket []tournament.Match) ([]tournament.Match, error) {
	round, current := LastRound(bracket)
	if len(current) == 0 {
		return bracket, nil
	}

	winners := make([]uuid.UUID, 0, len(current))
	for _, m := range current {
		if !m.Confirmed {
			return bracket, nil
		}
		if m.WinnerID == nil {
			return bracket, fmt.Errorf("%w: confirmed match %s has no winner", tournament.ErrBracketInconsistent, m.ID)
		}
		winners = append(winners, *m.WinnerID)
	}
	if len(winners) < 2 {
		return bracket, nil
	}

	next := round + 1
	order := 1
	for i := 0; i+1 < len(winners); i += 2 {
		bracket = append(bracket, tournament.NewEliminationMatch(next, order, winners[i], winners[i+1]))
		order++
	}
	if len(winners)%2 == 1 {
		bracket = append(bracket, tournament.NewByeMatch(next, order, winners[len(winners)-1]))
	}
	return bracket, nil
}

// IsTournamentComplete is true once the final has been confirmed: every
// match is confirmed and the last round holds a single match.
func IsTournamentComplete(bracket []tournament.Match) bool {
	if len(bracket) == 0 {
		return false
	}
	for _, m := range bracket {
		if !m.Confirmed {
			return false
		}
	}
	_, last := LastRound(bracket)
	return len(last) == 1
}

// DerivePodium reads the podium off the flat match list: first and second
// from the last match, third from the loser of the match before it. Byes are
// skipped. Third place is an approximation, the list does not say which
// match was the other semifinal.
func DerivePodium(bracket []tournament.Match) ([]tournament.PodiumEntry, error) {
	if !IsTournamentComplete(bracket) {
		return nil, tournament.ErrBracketIncomplete
	}

	played := make([]tournament.Match, 0, len(bracket))
	for _, m := range bracket {
		if !m.IsBye {
			played = append(played, m)
		}
	}
	if len(played) == 0 {
		return nil, tournament.ErrBracketIncomplete
	}

	final := played[len(played)-1]
	podium := []tournament.PodiumEntry{
		{Position: 1, TeamID: *final.WinnerID},
		{Position: 2, TeamID: *final.LoserID()},
	}
	if len(played) >= 2 {
		if loser := played[len(played)-2].LoserID(); loser != nil {
			podium = append(podium, tournament.PodiumEntry{Position: 3, TeamID: *loser})
		}
	}
	return podium, nil
}

// RoundName labels a round by how many matches it holds.
func RoundName(matchesInRound int) string {
	switch {
	case matchesInRound <= 1:
		return "Finale"
	case matchesInRound == 2:
		return "Semifinali"
	case matchesInRound <= 4:
		return "Quarti di finale"
	case matchesInRound <= 8:
		return "Ottavi di finale"
	default:
		return fmt.Sprintf("Turno da %d", matchesInRound*2)
	}
}

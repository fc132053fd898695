package engine

import (
	"fmt"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

const QualifiersPerGroup = 2

// DefaultGroupCount is one group per four teams, never fewer than two.
func DefaultGroupCount(teamCount int) int {
	return max(2, teamCount/4)
}

// GenerateGroups shuffles the teams and deals them round robin into groups,
// then creates one match per pair inside every group.
//
// The group count is capped so that no group ends up with a single team:
// two teams and a requested count of two give one group of two.
func GenerateGroups(rng Rand, teamIDs []uuid.UUID, groupCount int) ([]tournament.Group, error) {
	if groupCount < 1 {
		return nil, fmt.Errorf("%w: %d", tournament.ErrInvalidGroupSize, groupCount)
	}
	if len(teamIDs) < tournament.MinTeams {
		return nil, tournament.ErrTooFewTeams
	}
	groupCount = min(groupCount, len(teamIDs)/2)

	shuffled := make([]uuid.UUID, len(teamIDs))
	copy(shuffled, teamIDs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	groups := make([]tournament.Group, groupCount)
	for i := range groups {
		groups[i] = tournament.Group{
			Name:    tournament.GroupName(i),
			TeamIDs: []uuid.UUID{},
		}
	}
	for i, id := range shuffled {
		g := &groups[i%groupCount]
		g.TeamIDs = append(g.TeamIDs, id)
	}

	for gi := range groups {
		groups[gi].Matches = roundRobin(gi, groups[gi].TeamIDs)
	}
	return groups, nil
}

func roundRobin(group int, teamIDs []uuid.UUID) []tournament.Match {
	matches := make([]tournament.Match, 0, len(teamIDs)*(len(teamIDs)-1)/2)
	for i := 0; i < len(teamIDs); i++ {
		for j := i + 1; j < len(teamIDs); j++ {
			matches = append(matches, tournament.NewGroupMatch(group, teamIDs[i], teamIDs[j]))
		}
	}
	return matches
}

// QualifiersFromGroups returns the top two of every group, in group order.
func QualifiersFromGroups(state *tournament.State) ([]uuid.UUID, error) {
	var qualifiers []uuid.UUID
	for gi := range state.Groups {
		standings, err := GroupStandings(state, &state.Groups[gi])
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(standings) && i < QualifiersPerGroup; i++ {
			qualifiers = append(qualifiers, standings[i].ID)
		}
	}
	return qualifiers, nil
}

func GroupStageComplete(groups []tournament.Group) bool {
	for i := range groups {
		if !groups[i].Complete() {
			return false
		}
	}
	return true
}

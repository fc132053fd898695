package engine

import (
	"testing"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStandingsIsAdditive(t *testing.T) {
	t1 := tournament.Team{ID: uuid.New(), Name: "Winners", Points: 3, Wins: 1, SetsWon: 2, PointsScored: 40}
	t2 := tournament.Team{ID: uuid.New(), Name: "Losers", Points: 1, Losses: 1}
	m := tournament.NewGroupMatch(0, t1.ID, t2.ID)
	sets := []tournament.SetScore{{A: 21, B: 15}, {A: 6, B: 15}, {A: 15, B: 8}}
	require.NoError(t, ResolveMatch(&m, sets, tournament.BestOfThree))

	require.NoError(t, ApplyStandings(&t1, &t2, &m))

	assert.Equal(t, tournament.Team{
		ID: t1.ID, Name: "Winners",
		Points: 6, Wins: 2, SetsWon: 4, SetsLost: 1, PointsScored: 82, PointsConceded: 38,
	}, t1)
	assert.Equal(t, tournament.Team{
		ID: t2.ID, Name: "Losers",
		Points: 2, Losses: 2, SetsWon: 1, SetsLost: 2, PointsScored: 38, PointsConceded: 42,
	}, t2)
}

func TestApplyStandingsAcceptsSwappedTeams(t *testing.T) {
	t1 := tournament.Team{ID: uuid.New()}
	t2 := tournament.Team{ID: uuid.New()}
	m := tournament.NewGroupMatch(0, t1.ID, t2.ID)
	require.NoError(t, ResolveMatch(&m, []tournament.SetScore{{A: 19, B: 21}}, tournament.SingleSet))

	require.NoError(t, ApplyStandings(&t2, &t1, &m))

	assert.Equal(t, 3, t2.Points)
	assert.Equal(t, 1, t1.Points)
	assert.Equal(t, 21, t2.PointsScored)
}

func TestApplyStandingsErrors(t *testing.T) {
	t1 := tournament.Team{ID: uuid.New()}
	t2 := tournament.Team{ID: uuid.New()}
	m := tournament.NewGroupMatch(0, t1.ID, t2.ID)

	err := ApplyStandings(&t1, &t2, &m)
	assert.ErrorIs(t, err, tournament.ErrMatchNotConfirmed)

	require.NoError(t, ResolveMatch(&m, []tournament.SetScore{{A: 21, B: 3}}, tournament.SingleSet))
	stranger := tournament.Team{ID: uuid.New()}
	err = ApplyStandings(&t1, &stranger, &m)
	assert.ErrorIs(t, err, tournament.ErrTeamMismatch)
	assert.ErrorIs(t, err, tournament.ErrReference)
	assert.Zero(t, t1.Points)
}

func TestRankTeamsTieBreaks(t *testing.T) {
	// Same points, wins and set difference for all four, so only the point
	// difference separates them. The last two are equal in everything.
	teams := []tournament.Team{
		{Name: "A", Points: 5, Wins: 1, SetsWon: 3, SetsLost: 2, PointsScored: 90, PointsConceded: 95},
		{Name: "B", Points: 5, Wins: 1, SetsWon: 3, SetsLost: 2, PointsScored: 100, PointsConceded: 90},
		{Name: "C", Points: 5, Wins: 1, SetsWon: 2, SetsLost: 1, PointsScored: 80, PointsConceded: 80},
		{Name: "D", Points: 5, Wins: 1, SetsWon: 2, SetsLost: 1, PointsScored: 80, PointsConceded: 80},
	}

	ranked := RankTeams(teams)

	names := make([]string, len(ranked))
	for i, team := range ranked {
		names[i] = team.Name
	}
	assert.Equal(t, []string{"B", "C", "D", "A"}, names)
	assert.Equal(t, "A", teams[0].Name, "input is not reordered")
}

func TestRankTeamsKeyOrder(t *testing.T) {
	teams := []tournament.Team{
		{Name: "more set diff", Points: 4, Wins: 1, SetsWon: 5, SetsLost: 0},
		{Name: "more wins", Points: 4, Wins: 2, SetsWon: 0, SetsLost: 5},
		{Name: "more points", Points: 6},
	}

	ranked := RankTeams(teams)

	assert.Equal(t, "more points", ranked[0].Name)
	assert.Equal(t, "more wins", ranked[1].Name)
	assert.Equal(t, "more set diff", ranked[2].Name)
}

func TestGroupStandingsUnknownTeam(t *testing.T) {
	state := newTestState(t, 2)
	group := tournament.Group{TeamIDs: []uuid.UUID{state.Teams[0].ID, uuid.New()}}

	_, err := GroupStandings(state, &group)

	assert.ErrorIs(t, err, tournament.ErrTeamNotFound)
}

package engine

import (
	"testing"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(tournament.PhaseSetup, tournament.PhaseGroupStage))
	assert.True(t, CanTransition(tournament.PhaseGroupStage, tournament.PhaseElimination))
	assert.True(t, CanTransition(tournament.PhaseElimination, tournament.PhaseProclamation))
	assert.False(t, CanTransition(tournament.PhaseSetup, tournament.PhaseElimination))
	assert.False(t, CanTransition(tournament.PhaseProclamation, tournament.PhaseSetup))
	assert.False(t, CanTransition(tournament.PhaseElimination, tournament.PhaseGroupStage))
}

func TestStartGroupStagePreconditions(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*tournament.State)
		wantErr error
	}{
		{
			name:    "missing name",
			setup:   func(s *tournament.State) { s.Config.Name = " " },
			wantErr: tournament.ErrMissingName,
		},
		{
			name:    "too few teams",
			setup:   func(s *tournament.State) { s.Teams = s.Teams[:1] },
			wantErr: tournament.ErrTooFewTeams,
		},
		{
			name:    "double elimination",
			setup:   func(s *tournament.State) { s.Config.BracketType = tournament.DoubleElimination },
			wantErr: tournament.ErrUnsupportedBracketType,
		},
		{
			name:    "already launched",
			setup:   func(s *tournament.State) { s.Phase = tournament.PhaseGroupStage },
			wantErr: tournament.ErrIllegalTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState(t, 4)
			tt.setup(state)

			err := StartGroupStage(state, NewRand(1), 0)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tournament.ErrPrecondition)
			assert.Empty(t, state.Groups)
		})
	}
}

func TestStartEliminationNeedsConfirmedGroups(t *testing.T) {
	state := newTestState(t, 4)
	require.NoError(t, StartGroupStage(state, NewRand(1), 2))

	_, err := StartElimination(state, NewRand(1))
	assert.ErrorIs(t, err, tournament.ErrGroupStageIncomplete)
	assert.Equal(t, tournament.PhaseGroupStage, state.Phase)

	_, err = SimulateAllGroups(state, NewRand(2))
	require.NoError(t, err)

	dropped, err := StartElimination(state, NewRand(1))
	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.Equal(t, tournament.PhaseElimination, state.Phase)
	assert.Len(t, state.Bracket, 2)
}

func TestConfirmMatchRespectsPhase(t *testing.T) {
	state := newTestState(t, 4)
	require.NoError(t, StartGroupStage(state, NewRand(1), 1))
	match := state.Groups[0].Matches[0]

	state.Phase = tournament.PhaseElimination
	_, err := ConfirmMatch(state, match.ID, []tournament.SetScore{{A: 21, B: 10}})
	assert.ErrorIs(t, err, tournament.ErrWrongPhase)

	state.Phase = tournament.PhaseGroupStage
	_, err = ConfirmMatch(state, match.ID, []tournament.SetScore{{}})
	assert.ErrorIs(t, err, tournament.ErrNoSets)
	for _, team := range state.Teams {
		assert.Zero(t, team.Points, "a rejected result leaves standings alone")
	}

	confirmed, err := ConfirmMatch(state, match.ID, []tournament.SetScore{{A: 21, B: 10}})
	require.NoError(t, err)
	assert.True(t, confirmed.Confirmed)
	winner, err := state.Team(match.Team1ID)
	require.NoError(t, err)
	assert.Equal(t, 3, winner.Points)

	_, err = ConfirmMatch(state, match.ID, []tournament.SetScore{{A: 21, B: 10}})
	assert.ErrorIs(t, err, tournament.ErrMatchConfirmed)
	assert.Equal(t, 3, winner.Points, "confirmed twice does not count twice")
}

func TestTournamentEndToEnd(t *testing.T) {
	state := newTestState(t, 2)

	require.NoError(t, StartGroupStage(state, NewRand(3), 2))
	require.Len(t, state.Groups, 1)
	require.Len(t, state.Groups[0].Matches, 1)

	groupMatch := state.Groups[0].Matches[0]
	_, err := ConfirmMatch(state, groupMatch.ID, []tournament.SetScore{{A: 21, B: 15}})
	require.NoError(t, err)

	standings, err := GroupStandings(state, &state.Groups[0])
	require.NoError(t, err)
	assert.Equal(t, groupMatch.Team1ID, standings[0].ID)
	assert.Equal(t, 3, standings[0].Points)
	assert.Equal(t, 1, standings[1].Points)

	_, err = StartElimination(state, NewRand(3))
	require.NoError(t, err)
	require.Len(t, state.Bracket, 1)

	final := state.Bracket[0]
	_, err = ConfirmMatch(state, final.ID, []tournament.SetScore{{A: 21, B: 19}})
	require.NoError(t, err)
	require.Len(t, state.Bracket, 1)
	assert.True(t, IsTournamentComplete(state.Bracket))

	require.NoError(t, Proclaim(state))

	assert.Equal(t, tournament.PhaseProclamation, state.Phase)
	require.NotNil(t, state.Winner)
	assert.Equal(t, final.Team1ID, *state.Winner)
	assert.Equal(t, []tournament.PodiumEntry{
		{Position: 1, TeamID: final.Team1ID},
		{Position: 2, TeamID: final.Team2ID},
	}, state.Podium)

	winner, err := state.Team(final.Team1ID)
	require.NoError(t, err)
	loser, err := state.Team(final.Team2ID)
	require.NoError(t, err)

	for _, id := range winner.AthleteIDs {
		a, err := state.Athlete(id)
		require.NoError(t, err)
		assert.Equal(t, 1, a.Stats.Tournaments)
		assert.Equal(t, 1, a.Stats.Wins)
		assert.Zero(t, a.Stats.Losses)
		assert.Equal(t, []tournament.HistoryEntry{{Tournament: "Summer Cup", Position: 1, TeamCount: 2}}, a.Stats.History)
	}
	for _, id := range loser.AthleteIDs {
		a, err := state.Athlete(id)
		require.NoError(t, err)
		assert.Equal(t, 1, a.Stats.Tournaments)
		assert.Equal(t, 1, a.Stats.Losses)
		assert.Zero(t, a.Stats.Wins)
		assert.Equal(t, []tournament.HistoryEntry{{Tournament: "Summer Cup", Position: 2, TeamCount: 2}}, a.Stats.History)
	}
}

func TestProclaimSkipsRankingForSimulatedResults(t *testing.T) {
	state := newTestState(t, 8)
	state.SimulationToRanking = false
	require.NoError(t, StartGroupStage(state, NewRand(4), 2))
	_, err := SimulateAllGroups(state, NewRand(4))
	require.NoError(t, err)
	_, err = StartElimination(state, NewRand(4))
	require.NoError(t, err)
	_, err = SimulateBracket(state, NewRand(4))
	require.NoError(t, err)

	require.NoError(t, Proclaim(state))

	require.Len(t, state.Podium, 3)
	assert.Equal(t, state.Podium[0].TeamID, *state.Winner)
	for _, a := range state.Athletes {
		assert.Zero(t, a.Stats.Tournaments)
	}
}

func TestProclaimNeedsCompleteBracket(t *testing.T) {
	state := newTestState(t, 4)
	require.NoError(t, StartGroupStage(state, NewRand(1), 2))
	_, err := SimulateAllGroups(state, NewRand(1))
	require.NoError(t, err)
	_, err = StartElimination(state, NewRand(1))
	require.NoError(t, err)

	err = Proclaim(state)

	assert.ErrorIs(t, err, tournament.ErrBracketIncomplete)
	assert.Nil(t, state.Winner)
	assert.Equal(t, tournament.PhaseElimination, state.Phase)
}

func TestNewTournamentKeepsAthletes(t *testing.T) {
	state := newTestState(t, 2)
	state.Athletes[0].Stats.Tournaments = 3
	state.SimulationToRanking = false
	require.NoError(t, StartGroupStage(state, NewRand(1), 1))

	NewTournament(state, testDay)

	assert.Equal(t, tournament.PhaseSetup, state.Phase)
	assert.Len(t, state.Athletes, 4)
	assert.Equal(t, 3, state.Athletes[0].Stats.Tournaments)
	assert.Empty(t, state.Teams)
	assert.Empty(t, state.Groups)
	assert.Empty(t, state.Bracket)
	assert.Empty(t, state.Config.Name)
	assert.False(t, state.SimulationToRanking)
}

func TestProclaimRejectsTamperedBracket(t *testing.T) {
	state := newTestState(t, 8)
	require.NoError(t, StartGroupStage(state, NewRand(6), 2))
	_, err := SimulateAllGroups(state, NewRand(6))
	require.NoError(t, err)
	_, err = StartElimination(state, NewRand(6))
	require.NoError(t, err)
	_, err = SimulateBracket(state, NewRand(6))
	require.NoError(t, err)

	final := &state.Bracket[len(state.Bracket)-1]
	final.Team2ID = uuid.New()

	err = Proclaim(state)

	assert.ErrorIs(t, err, tournament.ErrBracketInconsistent)
	assert.ErrorIs(t, err, tournament.ErrReference)
	assert.Equal(t, tournament.PhaseElimination, state.Phase)
}

func TestConfirmMatchKeepsStateOnBrokenBracket(t *testing.T) {
	state := newTestState(t, 8)
	require.NoError(t, StartGroupStage(state, NewRand(3), 2))
	_, err := SimulateAllGroups(state, NewRand(3))
	require.NoError(t, err)
	_, err = StartElimination(state, NewRand(3))
	require.NoError(t, err)
	require.Len(t, state.Bracket, 2)

	// A confirmed semifinal without a winner cannot feed the final.
	state.Bracket[0].Confirmed = true
	state.Bracket[0].WinnerID = nil
	pending := state.Bracket[1]
	teamsBefore := append([]tournament.Team(nil), state.Teams...)

	_, err = ConfirmMatch(state, pending.ID, []tournament.SetScore{{A: 21, B: 15}})

	assert.ErrorIs(t, err, tournament.ErrBracketInconsistent)
	assert.Len(t, state.Bracket, 2)
	assert.False(t, state.Bracket[1].Confirmed)
	assert.Equal(t, teamsBefore, state.Teams)
}

package engine

import (
	"strings"
	"time"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

var transitions = map[tournament.Phase]tournament.Phase{
	tournament.PhaseSetup:       tournament.PhaseGroupStage,
	tournament.PhaseGroupStage:  tournament.PhaseElimination,
	tournament.PhaseElimination: tournament.PhaseProclamation,
}

// CanTransition only allows moving one phase forward.
func CanTransition(from, to tournament.Phase) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// StartGroupStage launches the tournament: groups are drawn and the phase
// moves to the group stage. A groupCount of zero picks the default.
func StartGroupStage(state *tournament.State, rng Rand, groupCount int) error {
	if !CanTransition(state.Phase, tournament.PhaseGroupStage) {
		return tournament.ErrIllegalTransition
	}
	if strings.TrimSpace(state.Config.Name) == "" {
		return tournament.ErrMissingName
	}
	if state.Config.BracketType == tournament.DoubleElimination {
		return tournament.ErrUnsupportedBracketType
	}
	if len(state.Teams) < tournament.MinTeams {
		return tournament.ErrTooFewTeams
	}
	if groupCount == 0 {
		groupCount = DefaultGroupCount(len(state.Teams))
	}

	ids := make([]uuid.UUID, len(state.Teams))
	for i, t := range state.Teams {
		ids[i] = t.ID
	}
	groups, err := GenerateGroups(rng, ids, groupCount)
	if err != nil {
		return err
	}

	for i := range state.Teams {
		state.Teams[i].ResetCounters()
	}
	state.Groups = groups
	state.Bracket = []tournament.Match{}
	state.Winner = nil
	state.Podium = []tournament.PodiumEntry{}
	state.Phase = tournament.PhaseGroupStage
	return nil
}

// StartElimination builds the bracket from the group qualifiers. It returns
// the qualifiers that could not be paired, if any.
func StartElimination(state *tournament.State, rng Rand) ([]uuid.UUID, error) {
	if !CanTransition(state.Phase, tournament.PhaseElimination) {
		return nil, tournament.ErrIllegalTransition
	}
	if !GroupStageComplete(state.Groups) {
		return nil, tournament.ErrGroupStageIncomplete
	}

	qualifiers, err := QualifiersFromGroups(state)
	if err != nil {
		return nil, err
	}
	if len(qualifiers) < 2 {
		return nil, tournament.ErrTooFewTeams
	}

	bracket, dropped := BuildBracket(rng, qualifiers)
	state.Bracket = bracket
	state.Phase = tournament.PhaseElimination
	return dropped, nil
}

// Proclaim closes a complete bracket: winner and podium are recorded and,
// unless the results are simulated and the toggle is off, written into the
// athletes' careers.
func Proclaim(state *tournament.State) error {
	if !CanTransition(state.Phase, tournament.PhaseProclamation) {
		return tournament.ErrIllegalTransition
	}
	if err := ValidateBracket(state.Bracket); err != nil {
		return err
	}
	podium, err := DerivePodium(state.Bracket)
	if err != nil {
		return err
	}

	propagate := state.SimulationToRanking || !state.HasSimulatedResults()
	if err := ApplyRankingResults(state, podium, propagate); err != nil {
		return err
	}

	winner := podium[0].TeamID
	state.Winner = &winner
	state.Podium = podium
	state.Phase = tournament.PhaseProclamation
	return nil
}

// NewTournament clears everything but the athletes and their careers.
func NewTournament(state *tournament.State, today time.Time) {
	athletes := state.Athletes
	toggle := state.SimulationToRanking

	*state = *tournament.NewState(today)
	state.Athletes = athletes
	state.SimulationToRanking = toggle
	state.Normalize(today)
}

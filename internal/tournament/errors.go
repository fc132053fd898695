package tournament

import (
	"errors"
	"fmt"
)

// Error categories. Every error below wraps exactly one of them so callers
// can branch with errors.Is on the category instead of the concrete value.
var (
	ErrValidation   = errors.New("validation error")
	ErrReference    = errors.New("reference error")
	ErrPrecondition = errors.New("precondition failed")
)

// Score and input validation
var (
	ErrNoSets           = fmt.Errorf("%w: no sets entered", ErrValidation)
	ErrNegativePoints   = fmt.Errorf("%w: set points cannot be negative", ErrValidation)
	ErrTiedSet          = fmt.Errorf("%w: a played set cannot end in a tie", ErrValidation)
	ErrTooManySets      = fmt.Errorf("%w: more sets than the format allows", ErrValidation)
	ErrTiedSetWins      = fmt.Errorf("%w: both sides won the same number of sets", ErrValidation)
	ErrMatchConfirmed   = fmt.Errorf("%w: match is already confirmed", ErrValidation)
	ErrMatchNotPlayable = fmt.Errorf("%w: match has no opponent", ErrValidation)
	ErrEmptyName        = fmt.Errorf("%w: name is required", ErrValidation)
	ErrDuplicateAthlete = fmt.Errorf("%w: an athlete with this name already exists", ErrValidation)
	ErrSameAthlete      = fmt.Errorf("%w: a team needs two different athletes", ErrValidation)
	ErrAthleteInTeam    = fmt.Errorf("%w: athlete already belongs to a team", ErrValidation)
	ErrInvalidMaxPoints = fmt.Errorf("%w: max points must be between %d and %d", ErrValidation, MinMaxPoints, MaxMaxPoints)
	ErrInvalidSetFormat = fmt.Errorf("%w: unknown set format", ErrValidation)
	ErrInvalidBracket   = fmt.Errorf("%w: unknown bracket type", ErrValidation)
	ErrInvalidDate      = fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrValidation)
	ErrInvalidGroupSize = fmt.Errorf("%w: invalid group count", ErrValidation)
	ErrInvalidStats     = fmt.Errorf("%w: wins and losses exceed tournaments played", ErrValidation)
	ErrInvalidSide      = fmt.Errorf("%w: side must be 1 or 2", ErrValidation)
)

// Phase and lifecycle preconditions
var (
	ErrWrongPhase             = fmt.Errorf("%w: operation not allowed in the current phase", ErrPrecondition)
	ErrIllegalTransition      = fmt.Errorf("%w: illegal phase transition", ErrPrecondition)
	ErrGroupStageIncomplete   = fmt.Errorf("%w: not every group match is confirmed", ErrPrecondition)
	ErrBracketIncomplete      = fmt.Errorf("%w: the bracket is not complete", ErrPrecondition)
	ErrTooFewTeams            = fmt.Errorf("%w: at least %d teams are required", ErrPrecondition, MinTeams)
	ErrMissingName            = fmt.Errorf("%w: the tournament needs a name", ErrPrecondition)
	ErrUnsupportedBracketType = fmt.Errorf("%w: double elimination is not supported", ErrPrecondition)
	ErrMatchNotConfirmed      = fmt.Errorf("%w: match is not confirmed", ErrPrecondition)
)

// Dangling references
var (
	ErrAthleteNotFound     = fmt.Errorf("%w: athlete not found", ErrReference)
	ErrTeamNotFound        = fmt.Errorf("%w: team not found", ErrReference)
	ErrMatchNotFound       = fmt.Errorf("%w: match not found", ErrReference)
	ErrTeamMismatch        = fmt.Errorf("%w: teams do not play this match", ErrReference)
	ErrBracketInconsistent = fmt.Errorf("%w: bracket team has no feeder match", ErrReference)
)

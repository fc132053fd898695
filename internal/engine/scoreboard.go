package engine

import (
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

// Scoreboard follows a match point by point. Closed sets are kept in Sets,
// the running set in PointsA and PointsB.
type Scoreboard struct {
	MatchID uuid.UUID             `json:"match_id"`
	SetsA   int                   `json:"sets_a"`
	SetsB   int                   `json:"sets_b"`
	PointsA int                   `json:"points_a"`
	PointsB int                   `json:"points_b"`
	Serving tournament.Side       `json:"serving"`
	Sets    []tournament.SetScore `json:"sets"`
}

func NewScoreboard(matchID uuid.UUID) Scoreboard {
	return Scoreboard{
		MatchID: matchID,
		Serving: tournament.SideA,
		Sets:    []tournament.SetScore{},
	}
}

func validSide(side tournament.Side) error {
	if side != tournament.SideA && side != tournament.SideB {
		return tournament.ErrInvalidSide
	}
	return nil
}

// Finished reports whether one side already holds the set wins the format needs.
func (b *Scoreboard) Finished(format tournament.SetFormat) bool {
	return b.SetsA >= format.SetsToWin() || b.SetsB >= format.SetsToWin()
}

// AddPoint scores a rally for side, which also takes the serve. It reports
// whether the point closed the set.
func (b *Scoreboard) AddPoint(side tournament.Side, maxPoints int, format tournament.SetFormat) (bool, error) {
	if err := validSide(side); err != nil {
		return false, err
	}
	if b.Finished(format) {
		return false, nil
	}

	if side == tournament.SideA {
		b.PointsA++
	} else {
		b.PointsB++
	}
	b.Serving = side

	limit := maxPoints
	if format.IsTiebreak(len(b.Sets)) {
		limit = tournament.TiebreakPoints
	}
	switch {
	case b.PointsA >= limit && b.PointsA-b.PointsB >= 2:
		b.SetsA++
	case b.PointsB >= limit && b.PointsB-b.PointsA >= 2:
		b.SetsB++
	default:
		return false, nil
	}

	b.Sets = append(b.Sets, tournament.SetScore{A: b.PointsA, B: b.PointsB})
	b.PointsA, b.PointsB = 0, 0
	return true, nil
}

// UndoPoint takes a point back from side in the running set.
func (b *Scoreboard) UndoPoint(side tournament.Side) error {
	if err := validSide(side); err != nil {
		return err
	}
	if side == tournament.SideA {
		b.PointsA = max(0, b.PointsA-1)
	} else {
		b.PointsB = max(0, b.PointsB-1)
	}
	return nil
}

func (b *Scoreboard) SetServing(side tournament.Side) error {
	if err := validSide(side); err != nil {
		return err
	}
	b.Serving = side
	return nil
}

// ResetSet clears the running set only.
func (b *Scoreboard) ResetSet() {
	b.PointsA, b.PointsB = 0, 0
}

// Submit returns the closed sets plus the running one when it has points.
// The result is meant for ResolveMatch, which rejects undecided boards.
func (b *Scoreboard) Submit() []tournament.SetScore {
	sets := make([]tournament.SetScore, 0, len(b.Sets)+1)
	sets = append(sets, b.Sets...)
	running := tournament.SetScore{A: b.PointsA, B: b.PointsB}
	if running.Played() {
		sets = append(sets, running)
	}
	return sets
}

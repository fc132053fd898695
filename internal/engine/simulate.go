package engine

import "github.com/AdamBeresnev/beach-volley/internal/tournament"

// Past limit+cutoffMargin points the leader takes the set without a two point lead.
const cutoffMargin = 6

// SimulateSet plays a set point by point with even odds. The set is won at
// the limit with a two point margin, the limit being 15 for a tiebreak set.
func SimulateSet(rng Rand, maxPoints int, tiebreak bool) tournament.SetScore {
	limit := maxPoints
	if tiebreak {
		limit = tournament.TiebreakPoints
	}

	var a, b int
	for {
		if rng.Float64() < 0.5 {
			a++
		} else {
			b++
		}
		if a < limit && b < limit {
			continue
		}
		if abs(a-b) >= 2 || a > limit+cutoffMargin || b > limit+cutoffMargin {
			return tournament.SetScore{A: a, B: b}
		}
	}
}

// SimulateMatch plays sets until one side reaches the set wins the format
// requires, then resolves the match with them.
func SimulateMatch(rng Rand, m *tournament.Match, maxPoints int, format tournament.SetFormat) error {
	var sets []tournament.SetScore
	var won1, won2 int
	for won1 < format.SetsToWin() && won2 < format.SetsToWin() {
		s := SimulateSet(rng, maxPoints, format.IsTiebreak(len(sets)))
		if s.A > s.B {
			won1++
		} else {
			won2++
		}
		sets = append(sets, s)
	}

	if err := ResolveMatch(m, sets, format); err != nil {
		return err
	}
	m.Simulated = true
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

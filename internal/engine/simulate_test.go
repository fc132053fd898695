package engine

import (
	"testing"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateSetEndsLegally(t *testing.T) {
	rng := NewRand(42)
	for _, tiebreak := range []bool{false, true} {
		limit := 21
		if tiebreak {
			limit = tournament.TiebreakPoints
		}
		for i := 0; i < 500; i++ {
			s := SimulateSet(rng, 21, tiebreak)

			hi, lo := max(s.A, s.B), min(s.A, s.B)
			require.NotEqual(t, s.A, s.B, "a simulated set always has a winner")
			assert.GreaterOrEqual(t, hi, limit)
			if hi-lo < 2 {
				assert.Greater(t, hi, limit+cutoffMargin, "a one point lead only wins past the cutoff")
			}
			assert.LessOrEqual(t, hi, limit+cutoffMargin+1)
		}
	}
}

func TestSimulateSetOneSided(t *testing.T) {
	s := SimulateSet(&fixedRand{values: []float64{0.1}}, 21, false)
	assert.Equal(t, tournament.SetScore{A: 21, B: 0}, s)

	s = SimulateSet(&fixedRand{values: []float64{0.9}}, 21, true)
	assert.Equal(t, tournament.SetScore{A: 0, B: 15}, s)
}

func TestSimulateSetCutoff(t *testing.T) {
	// Alternating points never open a two point gap
	s := SimulateSet(&fixedRand{values: []float64{0.1, 0.9}}, 21, false)
	assert.Equal(t, tournament.SetScore{A: 28, B: 27}, s)
}

func TestSimulateMatch(t *testing.T) {
	tests := []struct {
		name   string
		format tournament.SetFormat
		wins   int
	}{
		{name: "single set", format: tournament.SingleSet, wins: 1},
		{name: "best of three", format: tournament.BestOfThree, wins: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := NewRand(3)
			for i := 0; i < 100; i++ {
				m := tournament.NewEliminationMatch(1, 1, uuid.New(), uuid.New())

				require.NoError(t, SimulateMatch(rng, &m, 21, tt.format))

				assert.True(t, m.Confirmed)
				assert.True(t, m.Simulated)
				assert.Equal(t, tt.wins, max(m.SetsWon1, m.SetsWon2))
				assert.Less(t, min(m.SetsWon1, m.SetsWon2), tt.wins)
				assert.LessOrEqual(t, len(m.Sets), tt.format.MaxSets())
				if len(m.Sets) == 3 {
					third := m.Sets[2]
					assert.GreaterOrEqual(t, max(third.A, third.B), tournament.TiebreakPoints)
				}
			}
		})
	}
}

package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, time.July, 12, 0, 0, 0, 0, time.UTC)

// fixedRand replays values in a loop and never shuffles.
type fixedRand struct {
	values []float64
	i      int
}

func (r *fixedRand) Float64() float64 {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

func (r *fixedRand) Shuffle(n int, swap func(i, j int)) {}

// newTestState registers two athletes per team and names the tournament.
func newTestState(t *testing.T, teams int) *tournament.State {
	t.Helper()

	state := tournament.NewState(testDay)
	state.Config.Name = "Summer Cup"
	for i := 0; i < teams; i++ {
		a1, err := state.RegisterAthlete(fmt.Sprintf("Player %dA", i+1))
		require.NoError(t, err)
		id1 := a1.ID
		a2, err := state.RegisterAthlete(fmt.Sprintf("Player %dB", i+1))
		require.NoError(t, err)
		_, err = state.RegisterTeam(fmt.Sprintf("Team %d", i+1), id1, a2.ID)
		require.NoError(t, err)
	}
	return state
}

func teamIDs(state *tournament.State) []uuid.UUID {
	ids := make([]uuid.UUID, len(state.Teams))
	for i, team := range state.Teams {
		ids[i] = team.ID
	}
	return ids
}

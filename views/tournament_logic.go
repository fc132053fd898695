package views

import (
	"sort"

	"github.com/AdamBeresnev/beach-volley/internal/engine"
	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/google/uuid"
)

type BracketData struct {
	Rounds     map[int][]tournament.Match
	RoundNums  []int
	RoundNames map[int]string
	TeamNames  map[uuid.UUID]string
}

func PrepareBracketData(state *tournament.State) BracketData {
	rounds := make(map[int][]tournament.Match)
	var roundNums []int

	for _, m := range state.Bracket {
		if _, exists := rounds[m.Round]; !exists {
			roundNums = append(roundNums, m.Round)
		}
		rounds[m.Round] = append(rounds[m.Round], m)
	}
	sort.Ints(roundNums)

	names := make(map[int]string, len(roundNums))
	for _, r := range roundNums {
		sort.Slice(rounds[r], func(i, j int) bool {
			return rounds[r][i].Order < rounds[r][j].Order
		})
		names[r] = engine.RoundName(len(rounds[r]))
	}

	return BracketData{
		Rounds:     rounds,
		RoundNums:  roundNums,
		RoundNames: names,
		TeamNames:  teamNames(state),
	}
}

type GroupTable struct {
	Name      string
	Standings []tournament.Team
	Matches   []tournament.Match
}

// PrepareGroupTables ranks every group. Groups that reference unknown teams
// are reported as an error rather than rendered half empty.
func PrepareGroupTables(state *tournament.State) ([]GroupTable, error) {
	tables := make([]GroupTable, 0, len(state.Groups))
	for i := range state.Groups {
		g := &state.Groups[i]
		standings, err := engine.GroupStandings(state, g)
		if err != nil {
			return nil, err
		}
		tables = append(tables, GroupTable{Name: g.Name, Standings: standings, Matches: g.Matches})
	}
	return tables, nil
}

func teamNames(state *tournament.State) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(state.Teams))
	for _, t := range state.Teams {
		names[t.ID] = t.Name
	}
	return names
}

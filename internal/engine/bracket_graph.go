package engine

import (
	"fmt"

	"github.com/AdamBeresnev/beach-volley/internal/tournament"
	"github.com/dominikbraun/graph"
	"github.com/google/uuid"
)

// BracketGraph links every elimination match to the match its winner plays
// next. The graph is a forest of in-trees rooted at the final.
type BracketGraph struct {
	graph.Graph[uuid.UUID, tournament.Match]
}

func matchHash(m tournament.Match) uuid.UUID {
	return m.ID
}

// NewBracketGraph builds the feeder graph. A team in a later round that no
// match of the previous round produced makes the bracket inconsistent.
func NewBracketGraph(bracket []tournament.Match) (*BracketGraph, error) {
	g := graph.New(matchHash, graph.Directed(), graph.Acyclic())
	for _, m := range bracket {
		if err := g.AddVertex(m); err != nil {
			return nil, fmt.Errorf("failed to add match %s: %w", m.ID, err)
		}
	}

	byRound := make(map[int][]tournament.Match)
	for _, m := range bracket {
		byRound[m.Round] = append(byRound[m.Round], m)
	}

	for _, m := range bracket {
		if m.Round <= 1 {
			continue
		}
		for _, team := range []uuid.UUID{m.Team1ID, m.Team2ID} {
			if team == uuid.Nil {
				continue
			}
			feeder, ok := feederOf(byRound[m.Round-1], team)
			if !ok {
				return nil, fmt.Errorf("%w: team %s in round %d", tournament.ErrBracketInconsistent, team, m.Round)
			}
			if err := g.AddEdge(feeder, m.ID); err != nil {
				return nil, fmt.Errorf("failed to link match %s to %s: %w", feeder, m.ID, err)
			}
		}
	}
	return &BracketGraph{Graph: g}, nil
}

func feederOf(previous []tournament.Match, team uuid.UUID) (uuid.UUID, bool) {
	for _, m := range previous {
		if m.IsWinner(team) {
			return m.ID, true
		}
	}
	return uuid.Nil, false
}

// Feeders returns the matches whose winners play matchID.
func (g *BracketGraph) Feeders(matchID uuid.UUID) ([]uuid.UUID, error) {
	predecessors, err := g.PredecessorMap()
	if err != nil {
		return nil, err
	}
	feeders := make([]uuid.UUID, 0, 2)
	for id := range predecessors[matchID] {
		feeders = append(feeders, id)
	}
	return feeders, nil
}

// PathOf walks from a first round match to the furthest match reached by
// its winners. Matches come back in the order they are played.
func (g *BracketGraph) PathOf(matchID uuid.UUID) ([]tournament.Match, error) {
	var path []tournament.Match
	err := graph.BFS(g.Graph, matchID, func(id uuid.UUID) bool {
		m, err := g.Vertex(id)
		if err != nil {
			return true
		}
		path = append(path, m)
		return false
	})
	if err != nil {
		return nil, err
	}
	return path, nil
}

// ValidateBracket reports whether every later round team came from a match
// of the round before.
func ValidateBracket(bracket []tournament.Match) error {
	_, err := NewBracketGraph(bracket)
	return err
}

package tournament

import "github.com/google/uuid"

type Athlete struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Stats CareerStats `json:"stats"`
}

// CareerStats is only ever mutated when a tournament is proclaimed.
type CareerStats struct {
	Tournaments    int            `json:"tournaments"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	SetsWon        int            `json:"sets_won"`
	SetsLost       int            `json:"sets_lost"`
	PointsScored   int            `json:"points_scored"`
	PointsConceded int            `json:"points_conceded"`
	History        []HistoryEntry `json:"history"`
}

// HistoryEntry records one finished tournament. TeamCount is the field size
// at the time the entry was written; zero marks an entry that predates it.
type HistoryEntry struct {
	Tournament string `json:"tournament"`
	Position   int    `json:"position"`
	TeamCount  int    `json:"team_count"`
}

func NewAthlete(name string) Athlete {
	return Athlete{
		ID:    uuid.New(),
		Name:  name,
		Stats: CareerStats{History: []HistoryEntry{}},
	}
}

func (s CareerStats) Validate() error {
	if s.Wins+s.Losses > s.Tournaments {
		return ErrInvalidStats
	}
	return nil
}

// Medals counts podium finishes by position.
func (s CareerStats) Medals() (gold, silver, bronze int) {
	for _, h := range s.History {
		switch h.Position {
		case 1:
			gold++
		case 2:
			silver++
		case 3:
			bronze++
		}
	}
	return gold, silver, bronze
}

package tournament

import (
	"fmt"

	"github.com/google/uuid"
)

type Group struct {
	Name    string      `json:"name"`
	TeamIDs []uuid.UUID `json:"team_ids"`
	Matches []Match     `json:"matches"`
}

// GroupName returns "Girone A" for 0, "Girone B" for 1 and so on. Past Z it
// falls back to a number.
func GroupName(index int) string {
	if index >= 0 && index < 26 {
		return fmt.Sprintf("Girone %c", 'A'+index)
	}
	return fmt.Sprintf("Girone %d", index+1)
}

func (g *Group) Complete() bool {
	for _, m := range g.Matches {
		if !m.Confirmed {
			return false
		}
	}
	return true
}

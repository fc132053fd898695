package tournament

import (
	"strings"

	"github.com/google/uuid"
)

type Team struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	AthleteIDs [2]uuid.UUID `json:"athlete_ids"`

	// Counters for the running tournament, mirrored from confirmed matches
	Points         int `json:"points"`
	SetsWon        int `json:"sets_won"`
	SetsLost       int `json:"sets_lost"`
	PointsScored   int `json:"points_scored"`
	PointsConceded int `json:"points_conceded"`
	Wins           int `json:"wins"`
	Losses         int `json:"losses"`
}

func (t *Team) SetDiff() int {
	return t.SetsWon - t.SetsLost
}

func (t *Team) PointDiff() int {
	return t.PointsScored - t.PointsConceded
}

func (t *Team) HasAthlete(id uuid.UUID) bool {
	return t.AthleteIDs[0] == id || t.AthleteIDs[1] == id
}

// ResetCounters zeroes the per-tournament counters.
func (t *Team) ResetCounters() {
	t.Points = 0
	t.SetsWon, t.SetsLost = 0, 0
	t.PointsScored, t.PointsConceded = 0, 0
	t.Wins, t.Losses = 0, 0
}

// DefaultTeamName joins the first word of both athlete names, "Anna/Marta".
func DefaultTeamName(a1, a2 *Athlete) string {
	return firstWord(a1.Name) + "/" + firstWord(a2.Name)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}

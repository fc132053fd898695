package tournament

import "github.com/google/uuid"

type MatchPhase string

const (
	GroupMatch       MatchPhase = "group"
	EliminationMatch MatchPhase = "elimination"
)

// Side identifies one of the two teams of a match.
type Side int

const (
	NoSide Side = iota
	SideA
	SideB
)

func (s Side) Other() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	}
	return NoSide
}

type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

func (s SetScore) Played() bool {
	return s.A != 0 || s.B != 0
}

type Match struct {
	ID    uuid.UUID  `json:"id"`
	Phase MatchPhase `json:"phase"`
	Group *int       `json:"group"`

	// Position inside the elimination bracket, zero for group matches
	Round int `json:"round"`
	Order int `json:"order"`

	Team1ID uuid.UUID `json:"team1_id"`
	Team2ID uuid.UUID `json:"team2_id"`

	Sets      []SetScore `json:"sets"`
	SetsWon1  int        `json:"sets_won1"`
	SetsWon2  int        `json:"sets_won2"`
	WinnerID  *uuid.UUID `json:"winner_id"`
	Confirmed bool       `json:"confirmed"`
	Serving   Side       `json:"serving"`

	IsBye     bool `json:"is_bye"`
	Simulated bool `json:"simulated"`
}

func NewGroupMatch(group int, team1, team2 uuid.UUID) Match {
	return Match{
		ID:      uuid.New(),
		Phase:   GroupMatch,
		Group:   &group,
		Team1ID: team1,
		Team2ID: team2,
		Sets:    []SetScore{},
		Serving: SideA,
	}
}

func NewEliminationMatch(round, order int, team1, team2 uuid.UUID) Match {
	return Match{
		ID:      uuid.New(),
		Phase:   EliminationMatch,
		Round:   round,
		Order:   order,
		Team1ID: team1,
		Team2ID: team2,
		Sets:    []SetScore{},
		Serving: SideA,
	}
}

// NewByeMatch advances team without a game. It is born confirmed.
func NewByeMatch(round, order int, team uuid.UUID) Match {
	m := NewEliminationMatch(round, order, team, uuid.Nil)
	m.IsBye = true
	m.Confirmed = true
	m.WinnerID = &team
	return m
}

func (m *Match) Involves(teamID uuid.UUID) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}

// LoserID is nil until the match is confirmed, and always nil for a bye.
func (m *Match) LoserID() *uuid.UUID {
	if !m.Confirmed || m.WinnerID == nil || m.IsBye {
		return nil
	}
	loser := m.Team2ID
	if *m.WinnerID == m.Team2ID {
		loser = m.Team1ID
	}
	return &loser
}

func (m *Match) IsWinner(teamID uuid.UUID) bool {
	return m.Confirmed && m.WinnerID != nil && *m.WinnerID == teamID
}

// PointTotals sums the points of every counted set per side.
func (m *Match) PointTotals() (a, b int) {
	for _, s := range m.Sets {
		a += s.A
		b += s.B
	}
	return a, b
}

package tournament

import (
	"strings"
	"time"
)

type BracketType string

const (
	GroupsPlayoff     BracketType = "groups_playoff"
	DoubleElimination BracketType = "double_elimination"
)

type SetFormat string

const (
	SingleSet   SetFormat = "single_set"
	BestOfThree SetFormat = "best_of_three"
)

const (
	DefaultMaxPoints = 21
	MinMaxPoints     = 11
	MaxMaxPoints     = 30
	TiebreakPoints   = 15
	MinTeams         = 2
	DateLayout       = "2006-01-02"
)

// SetsToWin is the number of set wins that decides a match.
func (f SetFormat) SetsToWin() int {
	if f == BestOfThree {
		return 2
	}
	return 1
}

func (f SetFormat) MaxSets() int {
	if f == BestOfThree {
		return 3
	}
	return 1
}

// IsTiebreak reports whether the set at index (0 based) is played to 15.
func (f SetFormat) IsTiebreak(index int) bool {
	return f == BestOfThree && index == 2
}

type Config struct {
	Name        string      `json:"name"`
	BracketType BracketType `json:"bracket_type"`
	SetFormat   SetFormat   `json:"set_format"`
	MaxPoints   int         `json:"max_points"`
	Date        string      `json:"date"`
}

func DefaultConfig(today time.Time) Config {
	return Config{
		BracketType: GroupsPlayoff,
		SetFormat:   SingleSet,
		MaxPoints:   DefaultMaxPoints,
		Date:        today.Format(DateLayout),
	}
}

func (c Config) Validate() error {
	if c.MaxPoints < MinMaxPoints || c.MaxPoints > MaxMaxPoints {
		return ErrInvalidMaxPoints
	}
	switch c.SetFormat {
	case SingleSet, BestOfThree:
	default:
		return ErrInvalidSetFormat
	}
	switch c.BracketType {
	case GroupsPlayoff, DoubleElimination:
	default:
		return ErrInvalidBracket
	}
	if strings.TrimSpace(c.Date) != "" {
		if _, err := time.Parse(DateLayout, c.Date); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

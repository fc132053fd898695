package tournament

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseSetup        Phase = "setup"
	PhaseGroupStage   Phase = "group_stage"
	PhaseElimination  Phase = "elimination"
	PhaseProclamation Phase = "proclamation"
)

type PodiumEntry struct {
	Position int       `json:"position"`
	TeamID   uuid.UUID `json:"team_id"`
}

// State is the root aggregate. It is loaded and saved as a single snapshot.
type State struct {
	Phase               Phase         `json:"phase"`
	Config              Config        `json:"config"`
	Athletes            []Athlete     `json:"athletes"`
	Teams               []Team        `json:"teams"`
	Groups              []Group       `json:"groups"`
	Bracket             []Match       `json:"bracket"`
	Winner              *uuid.UUID    `json:"winner"`
	Podium              []PodiumEntry `json:"podium"`
	SimulationToRanking bool          `json:"simulation_to_ranking"`
}

func NewState(today time.Time) *State {
	return &State{
		Phase:               PhaseSetup,
		Config:              DefaultConfig(today),
		Athletes:            []Athlete{},
		Teams:               []Team{},
		Groups:              []Group{},
		Bracket:             []Match{},
		Podium:              []PodiumEntry{},
		SimulationToRanking: true,
	}
}

// Normalize fills whatever an older or hand edited snapshot is missing, so
// the rest of the code never has to deal with nil slices or zero config.
func (s *State) Normalize(today time.Time) {
	defaults := DefaultConfig(today)
	if s.Phase == "" {
		s.Phase = PhaseSetup
	}
	if s.Config.MaxPoints == 0 {
		s.Config.MaxPoints = defaults.MaxPoints
	}
	if s.Config.SetFormat == "" {
		s.Config.SetFormat = defaults.SetFormat
	}
	if s.Config.BracketType == "" {
		s.Config.BracketType = defaults.BracketType
	}
	if s.Athletes == nil {
		s.Athletes = []Athlete{}
	}
	for i := range s.Athletes {
		if s.Athletes[i].Stats.History == nil {
			s.Athletes[i].Stats.History = []HistoryEntry{}
		}
	}
	if s.Teams == nil {
		s.Teams = []Team{}
	}
	if s.Groups == nil {
		s.Groups = []Group{}
	}
	for i := range s.Groups {
		if s.Groups[i].TeamIDs == nil {
			s.Groups[i].TeamIDs = []uuid.UUID{}
		}
		if s.Groups[i].Matches == nil {
			s.Groups[i].Matches = []Match{}
		}
		normalizeMatches(s.Groups[i].Matches)
	}
	if s.Bracket == nil {
		s.Bracket = []Match{}
	}
	normalizeMatches(s.Bracket)
	if s.Podium == nil {
		s.Podium = []PodiumEntry{}
	}
}

func normalizeMatches(matches []Match) {
	for i := range matches {
		if matches[i].Sets == nil {
			matches[i].Sets = []SetScore{}
		}
	}
}

func (s *State) Athlete(id uuid.UUID) (*Athlete, error) {
	for i := range s.Athletes {
		if s.Athletes[i].ID == id {
			return &s.Athletes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrAthleteNotFound, id)
}

func (s *State) Team(id uuid.UUID) (*Team, error) {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, id)
}

// FindMatch looks through the groups first, then the bracket.
func (s *State) FindMatch(id uuid.UUID) (*Match, error) {
	for gi := range s.Groups {
		for mi := range s.Groups[gi].Matches {
			if s.Groups[gi].Matches[mi].ID == id {
				return &s.Groups[gi].Matches[mi], nil
			}
		}
	}
	for i := range s.Bracket {
		if s.Bracket[i].ID == id {
			return &s.Bracket[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
}

// TeamOf returns the team the athlete plays for, or nil.
func (s *State) TeamOf(athleteID uuid.UUID) *Team {
	for i := range s.Teams {
		if s.Teams[i].HasAthlete(athleteID) {
			return &s.Teams[i]
		}
	}
	return nil
}

func (s *State) AthleteByName(name string) *Athlete {
	for i := range s.Athletes {
		if s.Athletes[i].Name == name {
			return &s.Athletes[i]
		}
	}
	return nil
}

// RegisterAthlete adds a new athlete with empty career stats. Names are unique.
func (s *State) RegisterAthlete(name string) (*Athlete, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if s.AthleteByName(name) != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateAthlete, name)
	}
	s.Athletes = append(s.Athletes, NewAthlete(name))
	return &s.Athletes[len(s.Athletes)-1], nil
}

// RegisterTeam pairs two athletes. An empty name is derived from theirs.
func (s *State) RegisterTeam(name string, athlete1, athlete2 uuid.UUID) (*Team, error) {
	if s.Phase != PhaseSetup {
		return nil, ErrWrongPhase
	}
	if athlete1 == athlete2 {
		return nil, ErrSameAthlete
	}
	a1, err := s.Athlete(athlete1)
	if err != nil {
		return nil, err
	}
	a2, err := s.Athlete(athlete2)
	if err != nil {
		return nil, err
	}
	for _, a := range []*Athlete{a1, a2} {
		if s.TeamOf(a.ID) != nil {
			return nil, fmt.Errorf("%w: %s", ErrAthleteInTeam, a.Name)
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTeamName(a1, a2)
	}
	s.Teams = append(s.Teams, Team{
		ID:         uuid.New(),
		Name:       name,
		AthleteIDs: [2]uuid.UUID{a1.ID, a2.ID},
	})
	return &s.Teams[len(s.Teams)-1], nil
}

func (s *State) RemoveTeam(id uuid.UUID) error {
	if s.Phase != PhaseSetup {
		return ErrWrongPhase
	}
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			s.Teams = append(s.Teams[:i], s.Teams[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTeamNotFound, id)
}

// UpdateConfig replaces the tournament settings. Only allowed before launch.
func (s *State) UpdateConfig(cfg Config) error {
	if s.Phase != PhaseSetup {
		return ErrWrongPhase
	}
	cfg.Name = strings.TrimSpace(cfg.Name)
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.Config = cfg
	return nil
}

// GroupMatchCount returns the confirmed and total number of group matches.
func (s *State) GroupMatchCount() (confirmed, total int) {
	for _, g := range s.Groups {
		for _, m := range g.Matches {
			total++
			if m.Confirmed {
				confirmed++
			}
		}
	}
	return confirmed, total
}

// HasSimulatedResults reports whether any result of this tournament was
// produced by the simulator rather than entered by hand.
func (s *State) HasSimulatedResults() bool {
	for _, g := range s.Groups {
		for _, m := range g.Matches {
			if m.Simulated {
				return true
			}
		}
	}
	for _, m := range s.Bracket {
		if m.Simulated {
			return true
		}
	}
	return false
}

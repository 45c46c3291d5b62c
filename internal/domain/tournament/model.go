package tournament

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusUpcoming           Status = "upcoming"
	StatusRegistrationOpen   Status = "registration_open"
	StatusRegistrationClosed Status = "registration_closed"
	StatusInProgress         Status = "in_progress"
	StatusCompleted          Status = "completed"
	StatusCancelled          Status = "cancelled"
)

type Type string

const (
	TypeGroupKnockout     Type = "group_knockout"
	TypeSingleElimination Type = "single_elimination"
)

type MatchType string

const (
	MatchTypeBO1 MatchType = "bo1"
	MatchTypeBO3 MatchType = "bo3"
	MatchTypeBO5 MatchType = "bo5"
)

// DefaultAdvancePerGroup applies when teams_per_group_qualify is unset.
const DefaultAdvancePerGroup = 2

var statusOrder = map[Status]int{
	StatusUpcoming:           0,
	StatusRegistrationOpen:   1,
	StatusRegistrationClosed: 2,
	StatusInProgress:         3,
	StatusCompleted:          4,
}

// Tournament is a competition that owns groups, teams and matches.
type Tournament struct {
	ID                    string
	Name                  string
	Description           string
	StartDate             time.Time
	EndDate               *time.Time
	MaxTeams              int
	TeamSize              int
	EntryFee              float64
	PlatformFeePercentage float64
	Type                  Type
	MatchType             MatchType
	Status                Status
	NumGroups             *int
	TeamsPerGroupQualify  *int
	PrizePool             float64
	PrizeDistribution     PrizeDistribution
	IsLocked              bool
	BannerURL             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// AdvancePerGroup returns how many teams of each group qualify.
// fallback applies when the tournament leaves it unset.
func (t Tournament) AdvancePerGroup(fallback int) int {
	if t.TeamsPerGroupQualify != nil && *t.TeamsPerGroupQualify > 0 {
		return *t.TeamsPerGroupQualify
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultAdvancePerGroup
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("tournament id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}
	if t.StartDate.IsZero() {
		return fmt.Errorf("tournament start date is required")
	}
	if t.EndDate != nil && t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("tournament end date must not be before start date")
	}
	if t.MaxTeams <= 0 {
		return fmt.Errorf("max teams must be greater than zero")
	}
	if t.TeamSize <= 0 {
		return fmt.Errorf("team size must be greater than zero")
	}
	if t.EntryFee < 0 || t.PrizePool < 0 {
		return fmt.Errorf("entry fee and prize pool must not be negative")
	}
	if t.PlatformFeePercentage < 0 || t.PlatformFeePercentage > 100 {
		return fmt.Errorf("platform fee percentage must be within 0..100")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("unknown tournament type %q", t.Type)
	}
	if !t.MatchType.Valid() {
		return fmt.Errorf("unknown match type %q", t.MatchType)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("unknown tournament status %q", t.Status)
	}
	if t.NumGroups != nil && (*t.NumGroups <= 0 || *t.NumGroups > MaxGroups) {
		return fmt.Errorf("num groups must be within 1..%d", MaxGroups)
	}
	if t.TeamsPerGroupQualify != nil && *t.TeamsPerGroupQualify <= 0 {
		return fmt.Errorf("teams per group qualify must be greater than zero")
	}
	if len(t.PrizeDistribution) > 0 {
		if err := t.PrizeDistribution.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// MaxGroups bounds group letters to A..Z.
const MaxGroups = 26

func (s Status) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusOrder[s]
	return ok
}

// CanTransition reports whether the lifecycle may move from s to next.
// Statuses only move forward; cancellation is allowed until completion.
func (s Status) CanTransition(next Status) bool {
	if !s.Valid() || !next.Valid() || s == next {
		return false
	}
	if s == StatusCancelled || s == StatusCompleted {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return statusOrder[next] > statusOrder[s]
}

func (t Type) Valid() bool {
	return t == TypeGroupKnockout || t == TypeSingleElimination
}

func (m MatchType) Valid() bool {
	switch m {
	case MatchTypeBO1, MatchTypeBO3, MatchTypeBO5:
		return true
	default:
		return false
	}
}

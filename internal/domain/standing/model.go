package standing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNegativeValue = errors.New("standing values must not be negative")

// Standing is one team's record inside one group.
type Standing struct {
	ID          string
	GroupID     string
	TeamID      string
	Wins        int
	Losses      int
	Draws       int
	Points      int
	GamesPlayed int
	IsQualified bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Zeroed returns the initial standing written when a team joins a group.
func Zeroed(id, groupID, teamID string, now time.Time) Standing {
	return Standing{
		ID:        id,
		GroupID:   groupID,
		TeamID:    teamID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s Standing) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("standing id is required")
	}
	if strings.TrimSpace(s.GroupID) == "" {
		return fmt.Errorf("standing group id is required")
	}
	if strings.TrimSpace(s.TeamID) == "" {
		return fmt.Errorf("standing team id is required")
	}
	if s.Wins < 0 || s.Losses < 0 || s.Draws < 0 || s.Points < 0 || s.GamesPlayed < 0 {
		return ErrNegativeValue
	}
	return nil
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Wins        *int
	Losses      *int
	Draws       *int
	Points      *int
	GamesPlayed *int
}

func (p Patch) Empty() bool {
	return p.Wins == nil && p.Losses == nil && p.Draws == nil && p.Points == nil && p.GamesPlayed == nil
}

func (p Patch) Validate() error {
	fields := []struct {
		name  string
		value *int
	}{
		{"wins", p.Wins},
		{"losses", p.Losses},
		{"draws", p.Draws},
		{"points", p.Points},
		{"games_played", p.GamesPlayed},
	}
	for _, f := range fields {
		if f.value != nil && *f.value < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeValue, f.name, *f.value)
		}
	}
	return nil
}

// Apply returns s with the patch fields written over it.
func (p Patch) Apply(s Standing) Standing {
	if p.Wins != nil {
		s.Wins = *p.Wins
	}
	if p.Losses != nil {
		s.Losses = *p.Losses
	}
	if p.Draws != nil {
		s.Draws = *p.Draws
	}
	if p.Points != nil {
		s.Points = *p.Points
	}
	if p.GamesPlayed != nil {
		s.GamesPlayed = *p.GamesPlayed
	}
	return s
}

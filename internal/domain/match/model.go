package match

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
)

type Stage string

const (
	StageGroup    Stage = "group"
	StageKnockout Stage = "knockout"
)

var (
	ErrNegativeScore  = errors.New("match scores must not be negative")
	ErrInvalidWinner  = errors.New("winner must be one of the match teams")
	ErrSameTeams      = errors.New("a team cannot play itself")
	ErrMissingBracket = errors.New("knockout matches need a bracket round and position")
)

// Match is a single series between two teams.
type Match struct {
	ID              string
	TournamentID    string
	GroupID         string
	Team1ID         string
	Team2ID         string
	Team1Score      int
	Team2Score      int
	WinnerID        string
	MatchType       tournament.MatchType
	Stage           Stage
	BracketRound    *int
	BracketPosition *int
	ScheduledAt     *time.Time
	PlayedAt        *time.Time
	AdminNotes      string
	IsCompleted     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.TournamentID) == "" {
		return fmt.Errorf("match tournament id is required")
	}
	if !m.MatchType.Valid() {
		return fmt.Errorf("unknown match type %q", m.MatchType)
	}
	if m.Team1ID != "" && m.Team1ID == m.Team2ID {
		return ErrSameTeams
	}
	switch m.Stage {
	case StageGroup:
		if strings.TrimSpace(m.GroupID) == "" {
			return fmt.Errorf("group match needs a group id")
		}
	case StageKnockout:
		if m.BracketRound == nil || m.BracketPosition == nil || *m.BracketRound <= 0 || *m.BracketPosition <= 0 {
			return ErrMissingBracket
		}
	default:
		return fmt.Errorf("unknown match stage %q", m.Stage)
	}
	return nil
}

// Result is the outcome an admin records for a match.
type Result struct {
	Team1Score int
	Team2Score int
	WinnerID   string
	AdminNotes string
}

func (r Result) ValidateFor(m Match) error {
	if r.Team1Score < 0 || r.Team2Score < 0 {
		return ErrNegativeScore
	}
	if r.WinnerID != "" && r.WinnerID != m.Team1ID && r.WinnerID != m.Team2ID {
		return ErrInvalidWinner
	}
	return nil
}

// Apply records the result and marks the match completed at playedAt.
func (r Result) Apply(m Match, playedAt time.Time) Match {
	m.Team1Score = r.Team1Score
	m.Team2Score = r.Team2Score
	m.WinnerID = r.WinnerID
	m.AdminNotes = r.AdminNotes
	m.IsCompleted = true
	m.PlayedAt = &playedAt
	m.UpdatedAt = playedAt
	return m
}

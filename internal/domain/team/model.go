package team

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusIncomplete     Status = "incomplete"
	StatusPendingPayment Status = "pending_payment"
	StatusRegistered     Status = "registered"
	StatusQualified      Status = "qualified"
	StatusEliminated     Status = "eliminated"
)

type MemberRole string

const (
	RoleCaptain MemberRole = "captain"
	RolePlayer  MemberRole = "player"
)

// Team is a roster registered by its captain into one tournament.
type Team struct {
	ID           string
	TournamentID string
	Name         string
	LogoURL      string
	CaptainID    string
	Status       Status
	GroupName    string
	IsLocked     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.TournamentID) == "" {
		return fmt.Errorf("team tournament id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.CaptainID) == "" {
		return fmt.Errorf("team captain id is required")
	}
	if !t.Status.Valid() {
		return fmt.Errorf("unknown team status %q", t.Status)
	}

	return nil
}

// Member is one user on a team roster.
type Member struct {
	ID       string
	TeamID   string
	UserID   string
	RiotID   string
	Role     MemberRole
	JoinedAt time.Time
}

func (s Status) Valid() bool {
	switch s {
	case StatusIncomplete, StatusPendingPayment, StatusRegistered, StatusQualified, StatusEliminated:
		return true
	default:
		return false
	}
}

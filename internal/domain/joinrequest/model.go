package joinrequest

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is a player's ask to join a team roster.
type Request struct {
	ID         string
	TeamID     string
	UserID     string
	RiotID     string
	Message    string
	Status     Status
	ReviewedBy string
	ReviewedAt *time.Time
	CreatedAt  time.Time
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("join request id is required")
	}
	if strings.TrimSpace(r.TeamID) == "" || strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("join request team and user are required")
	}
	if strings.TrimSpace(r.RiotID) == "" {
		return fmt.Errorf("join request riot id is required")
	}
	return nil
}

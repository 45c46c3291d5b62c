package payment

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

// Payment is an entry fee proof uploaded by a team captain.
type Payment struct {
	ID            string
	UserID        string
	TeamID        string
	TournamentID  string
	Amount        float64
	ScreenshotURL string
	PaymentMethod string
	Status        Status
	AdminNotes    string
	ReviewedBy    string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("payment id is required")
	}
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("payment user id is required")
	}
	if strings.TrimSpace(p.TeamID) == "" || strings.TrimSpace(p.TournamentID) == "" {
		return fmt.Errorf("payment team and tournament are required")
	}
	if p.Amount <= 0 {
		return fmt.Errorf("payment amount must be greater than zero")
	}
	if strings.TrimSpace(p.ScreenshotURL) == "" {
		return fmt.Errorf("payment screenshot is required")
	}
	if !p.Status.Valid() {
		return fmt.Errorf("unknown payment status %q", p.Status)
	}
	return nil
}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Reviewable reports whether an admin decision can move the payment to next.
// Pending payments move to either outcome; repeating the stored outcome is allowed.
func (s Status) Reviewable(next Status) bool {
	if next != StatusApproved && next != StatusRejected {
		return false
	}
	return s == StatusPending || s == next
}

package profile

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Profile is the player-facing account data attached to an auth user.
type Profile struct {
	ID        string
	UserID    string
	Username  string
	RiotID    string
	Rank      string
	AvatarURL string
	IsBanned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("profile user id is required")
	}
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("profile username is required")
	}
	return nil
}

// Update holds the editable profile fields; nil leaves a field unchanged.
type Update struct {
	Username  *string
	RiotID    *string
	Rank      *string
	AvatarURL *string
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

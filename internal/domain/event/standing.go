// Package event holds messages published between use cases.
package event

import (
	"context"
	"time"
)

// TopicStandingUpdated carries StandingUpdated messages.
const TopicStandingUpdated = "standing.updated"

// StandingUpdated is published after a standing row was written.
type StandingUpdated struct {
	StandingID string    `json:"standing_id"`
	GroupID    string    `json:"group_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits domain events after their write has committed.
type Publisher interface {
	PublishStandingUpdated(ctx context.Context, evt StandingUpdated) error
}

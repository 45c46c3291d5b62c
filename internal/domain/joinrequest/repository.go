package joinrequest

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicate is returned when the user already asked to join the team.
var ErrDuplicate = errors.New("join request already exists")

type Repository interface {
	Create(ctx context.Context, item Request) error
	GetByID(ctx context.Context, requestID string) (Request, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Request, error)
	SetStatus(ctx context.Context, requestID string, status Status, reviewedBy string, reviewedAt time.Time) error
}

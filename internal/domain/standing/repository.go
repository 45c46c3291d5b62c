package standing

import (
	"context"
	"errors"
)

// ErrDuplicate is returned when a team already has a standing in the group.
var ErrDuplicate = errors.New("standing already exists for team in group")

// Repository describes group standing persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Standing) error
	GetByID(ctx context.Context, standingID string) (Standing, bool, error)
	Update(ctx context.Context, standingID string, patch Patch) (Standing, bool, error)
	ListByGroup(ctx context.Context, groupID string) ([]Row, error)
	SetQualified(ctx context.Context, standingIDs []string, qualified bool) error
}

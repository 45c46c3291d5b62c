package team

import (
	"context"
	"errors"
)

// ErrDuplicateMember is returned when a user is already on the roster.
var ErrDuplicateMember = errors.New("team member already exists")

// Repository describes team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]Team, error)
	UpdateStatus(ctx context.Context, teamID string, status Status) error
	UpdateGroupName(ctx context.Context, teamID, groupName string) error
	AddMember(ctx context.Context, member Member) error
	RemoveMember(ctx context.Context, teamID, userID string) (bool, error)
	ListMembers(ctx context.Context, teamID string) ([]Member, error)
}

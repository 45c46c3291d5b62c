package group

import (
	"context"
	"errors"
)

// ErrUnknownTournament is returned when a group references a missing tournament.
var ErrUnknownTournament = errors.New("group tournament does not exist")

type Repository interface {
	CreateBatch(ctx context.Context, items []Group) error
	GetByID(ctx context.Context, groupID string) (Group, bool, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]Group, error)
}

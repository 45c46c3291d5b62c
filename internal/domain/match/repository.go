package match

import "context"

type ListFilter struct {
	TournamentID string
	Stage        Stage
	GroupID      string
}

type Repository interface {
	Create(ctx context.Context, item Match) error
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Match, error)
	SaveResult(ctx context.Context, item Match) error
}

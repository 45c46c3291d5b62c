package tournament

import "context"

type ListFilter struct {
	Status Status
	Limit  int
}

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Tournament) error
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Tournament, error)
	UpdateStatus(ctx context.Context, tournamentID string, status Status) error
}

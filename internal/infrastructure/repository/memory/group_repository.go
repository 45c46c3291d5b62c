package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/tournament-hub/internal/domain/group"
)

type GroupRepository struct {
	mu          sync.RWMutex
	items       map[string]group.Group
	tournaments *TournamentRepository
}

func NewGroupRepository(tournaments *TournamentRepository) *GroupRepository {
	return &GroupRepository{
		items:       make(map[string]group.Group),
		tournaments: tournaments,
	}
}

func (r *GroupRepository) CreateBatch(_ context.Context, items []group.Group) error {
	for _, item := range items {
		if r.tournaments != nil && !r.tournaments.exists(item.TournamentID) {
			return group.ErrUnknownTournament
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.items[item.ID] = item
	}
	return nil
}

func (r *GroupRepository) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[groupID]
	return item, ok, nil
}

func (r *GroupRepository) ListByTournament(_ context.Context, tournamentID string) ([]group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.Group, 0)
	for _, item := range r.items {
		if item.TournamentID == tournamentID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
)

type StandingRepository struct {
	mu    sync.RWMutex
	items map[string]standing.Standing
	teams *TeamRepository
	now   func() time.Time
}

func NewStandingRepository(teams *TeamRepository) *StandingRepository {
	return &StandingRepository{
		items: make(map[string]standing.Standing),
		teams: teams,
		now:   time.Now,
	}
}

func (r *StandingRepository) Create(_ context.Context, item standing.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.GroupID == item.GroupID && existing.TeamID == item.TeamID {
			return standing.ErrDuplicate
		}
	}
	r.items[item.ID] = item
	return nil
}

func (r *StandingRepository) GetByID(_ context.Context, standingID string) (standing.Standing, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[standingID]
	return item, ok, nil
}

func (r *StandingRepository) Update(_ context.Context, standingID string, patch standing.Patch) (standing.Standing, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[standingID]
	if !ok {
		return standing.Standing{}, false, nil
	}
	item = patch.Apply(item)
	item.UpdatedAt = r.now().UTC()
	r.items[standingID] = item
	return item, true, nil
}

// ListByGroup returns rows in insertion order, like an unordered table scan.
func (r *StandingRepository) ListByGroup(ctx context.Context, groupID string) ([]standing.Row, error) {
	r.mu.RLock()
	rows := make([]standing.Row, 0)
	for _, item := range r.items {
		if item.GroupID == groupID {
			rows = append(rows, standing.Row{Standing: item})
		}
	}
	r.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[i].ID < rows[j].ID
	})

	if r.teams != nil {
		for i := range rows {
			if item, ok, _ := r.teams.GetByID(ctx, rows[i].TeamID); ok {
				rows[i].TeamName = item.Name
			}
		}
	}
	return rows, nil
}

func (r *StandingRepository) SetQualified(_ context.Context, standingIDs []string, qualified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	for _, id := range standingIDs {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		item.IsQualified = qualified
		item.UpdatedAt = now
		r.items[id] = item
	}
	return nil
}

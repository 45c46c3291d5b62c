package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/joinrequest"
)

type JoinRequestRepository struct {
	mu    sync.RWMutex
	items map[string]joinrequest.Request
}

func NewJoinRequestRepository() *JoinRequestRepository {
	return &JoinRequestRepository{items: make(map[string]joinrequest.Request)}
}

func (r *JoinRequestRepository) Create(_ context.Context, item joinrequest.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.TeamID == item.TeamID && existing.UserID == item.UserID {
			return joinrequest.ErrDuplicate
		}
	}
	r.items[item.ID] = item
	return nil
}

func (r *JoinRequestRepository) GetByID(_ context.Context, requestID string) (joinrequest.Request, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[requestID]
	return item, ok, nil
}

func (r *JoinRequestRepository) ListByTeam(_ context.Context, teamID string) ([]joinrequest.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]joinrequest.Request, 0)
	for _, item := range r.items {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *JoinRequestRepository) SetStatus(_ context.Context, requestID string, status joinrequest.Status, reviewedBy string, reviewedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[requestID]
	if !ok {
		return nil
	}
	item.Status = status
	item.ReviewedBy = reviewedBy
	item.ReviewedAt = &reviewedAt
	r.items[requestID] = item
	return nil
}

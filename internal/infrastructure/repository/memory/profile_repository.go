package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tournament-hub/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]profile.Profile
	roles map[string][]profile.Role
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		items: make(map[string]profile.Profile),
		roles: make(map[string][]profile.Role),
	}
}

func (r *ProfileRepository) Upsert(_ context.Context, item profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.UserID] = item
	return nil
}

func (r *ProfileRepository) GetByUserID(_ context.Context, userID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	return item, ok, nil
}

func (r *ProfileRepository) Update(_ context.Context, userID string, update profile.Update) (profile.Profile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[userID]
	if !ok {
		return profile.Profile{}, false, nil
	}
	if update.Username != nil {
		item.Username = *update.Username
	}
	if update.RiotID != nil {
		item.RiotID = *update.RiotID
	}
	if update.Rank != nil {
		item.Rank = *update.Rank
	}
	if update.AvatarURL != nil {
		item.AvatarURL = *update.AvatarURL
	}
	r.items[userID] = item
	return item, true, nil
}

func (r *ProfileRepository) SetBanned(_ context.Context, userID string, banned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[userID]
	if !ok {
		return nil
	}
	item.IsBanned = banned
	r.items[userID] = item
	return nil
}

func (r *ProfileRepository) ListRoles(_ context.Context, userID string) ([]profile.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]profile.Role(nil), r.roles[userID]...), nil
}

func (r *ProfileRepository) GrantRole(_ context.Context, userID string, role profile.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.roles[userID] {
		if existing == role {
			return nil
		}
	}
	r.roles[userID] = append(r.roles[userID], role)
	return nil
}

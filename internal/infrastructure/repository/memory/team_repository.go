package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	items   map[string]team.Team
	members map[string][]team.Member
	now     func() time.Time
}

func NewTeamRepository(seed []team.Team) *TeamRepository {
	items := make(map[string]team.Team, len(seed))
	for _, item := range seed {
		items[item.ID] = item
	}
	return &TeamRepository{
		items:   items,
		members: make(map[string][]team.Member),
		now:     time.Now,
	}
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	return item, ok, nil
}

func (r *TeamRepository) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *TeamRepository) ListByTournament(_ context.Context, tournamentID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.items {
		if item.TournamentID == tournamentID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *TeamRepository) UpdateStatus(_ context.Context, teamID string, status team.Status) error {
	return r.mutate(teamID, func(item *team.Team) {
		item.Status = status
	})
}

func (r *TeamRepository) UpdateGroupName(_ context.Context, teamID, groupName string) error {
	return r.mutate(teamID, func(item *team.Team) {
		item.GroupName = groupName
	})
}

func (r *TeamRepository) AddMember(_ context.Context, member team.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members[member.TeamID] {
		if existing.UserID == member.UserID {
			return team.ErrDuplicateMember
		}
	}
	r.members[member.TeamID] = append(r.members[member.TeamID], member)
	return nil
}

func (r *TeamRepository) RemoveMember(_ context.Context, teamID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.members[teamID]
	for i, existing := range members {
		if existing.UserID == userID {
			r.members[teamID] = append(members[:i:i], members[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *TeamRepository) ListMembers(_ context.Context, teamID string) ([]team.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]team.Member(nil), r.members[teamID]...), nil
}

func (r *TeamRepository) mutate(teamID string, fn func(*team.Team)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[teamID]
	if !ok {
		return nil
	}
	fn(&item)
	item.UpdatedAt = r.now().UTC()
	r.items[teamID] = item
	return nil
}

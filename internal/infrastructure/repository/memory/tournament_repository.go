package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
)

type TournamentRepository struct {
	mu    sync.RWMutex
	items map[string]tournament.Tournament
}

func NewTournamentRepository(seed []tournament.Tournament) *TournamentRepository {
	items := make(map[string]tournament.Tournament, len(seed))
	for _, item := range seed {
		items[item.ID] = cloneTournament(item)
	}
	return &TournamentRepository{items: items}
}

func (r *TournamentRepository) Create(_ context.Context, item tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneTournament(item)
	return nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[tournamentID]
	if !ok {
		return tournament.Tournament{}, false, nil
	}
	return cloneTournament(item), true, nil
}

func (r *TournamentRepository) List(_ context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(r.items))
	for _, item := range r.items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, cloneTournament(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *TournamentRepository) UpdateStatus(_ context.Context, tournamentID string, status tournament.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[tournamentID]
	if !ok {
		return nil
	}
	item.Status = status
	r.items[tournamentID] = item
	return nil
}

func (r *TournamentRepository) exists(tournamentID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[tournamentID]
	return ok
}

func cloneTournament(t tournament.Tournament) tournament.Tournament {
	copied := t
	if t.PrizeDistribution != nil {
		copied.PrizeDistribution = make(tournament.PrizeDistribution, len(t.PrizeDistribution))
		for place, percent := range t.PrizeDistribution {
			copied.PrizeDistribution[place] = percent
		}
	}
	return copied
}

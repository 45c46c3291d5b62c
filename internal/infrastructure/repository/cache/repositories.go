package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/tournament-hub/internal/domain/group"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	basecache "github.com/riskibarqy/tournament-hub/internal/platform/cache"
)

const (
	tournamentByIDPrefix  = "tournament:id:"
	tournamentListPrefix  = "tournament:list:"
	groupByIDPrefix       = "group:id:"
	groupListPrefix       = "group:list:"
	standingByGroupPrefix = "standing:group:"
	teamByIDPrefix        = "team:id:"
	teamListByTournPrefix = "team:list:"
	teamMembersPrefix     = "team:members:"
)

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, tournamentByIDPrefix+item.ID)
	r.cache.DeletePrefix(ctx, tournamentListPrefix)
	return nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, tournamentByIDPrefix+tournamentID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return cachedTournamentByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	cached, _ := v.(cachedTournamentByID)
	return cloneTournament(cached.value), cached.exists, nil
}

func (r *TournamentRepository) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	key := tournamentListPrefix + string(filter.Status) + ":" + strconv.Itoa(filter.Limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]tournament.Tournament(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]tournament.Tournament)
	out := make([]tournament.Tournament, 0, len(items))
	for _, item := range items {
		out = append(out, cloneTournament(item))
	}
	return out, nil
}

func (r *TournamentRepository) UpdateStatus(ctx context.Context, tournamentID string, status tournament.Status) error {
	if err := r.next.UpdateStatus(ctx, tournamentID, status); err != nil {
		return err
	}

	r.cache.Delete(ctx, tournamentByIDPrefix+tournamentID)
	r.cache.DeletePrefix(ctx, tournamentListPrefix)
	return nil
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}

// cloneTournament copies the prize map so callers cannot mutate the cached value.
func cloneTournament(item tournament.Tournament) tournament.Tournament {
	if item.PrizeDistribution != nil {
		distribution := make(tournament.PrizeDistribution, len(item.PrizeDistribution))
		for place, percent := range item.PrizeDistribution {
			distribution[place] = percent
		}
		item.PrizeDistribution = distribution
	}
	return item
}

type GroupRepository struct {
	next  group.Repository
	cache *basecache.Store
}

func NewGroupRepository(next group.Repository, cache *basecache.Store) *GroupRepository {
	return &GroupRepository{next: next, cache: cache}
}

func (r *GroupRepository) CreateBatch(ctx context.Context, items []group.Group) error {
	if err := r.next.CreateBatch(ctx, items); err != nil {
		return err
	}

	for _, item := range items {
		r.cache.Delete(ctx, groupByIDPrefix+item.ID, groupListPrefix+item.TournamentID)
	}
	return nil
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, groupByIDPrefix+groupID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return cachedGroupByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return group.Group{}, false, err
	}

	cached, _ := v.(cachedGroupByID)
	return cached.value, cached.exists, nil
}

func (r *GroupRepository) ListByTournament(ctx context.Context, tournamentID string) ([]group.Group, error) {
	v, err := r.cache.GetOrLoad(ctx, groupListPrefix+tournamentID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]group.Group(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]group.Group)
	return append([]group.Group(nil), items...), nil
}

type cachedGroupByID struct {
	value  group.Group
	exists bool
}

// StandingRepository caches group tables. Every write drops the affected group.
type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) Create(ctx context.Context, item standing.Standing) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, standingByGroupPrefix+item.GroupID)
	return nil
}

func (r *StandingRepository) GetByID(ctx context.Context, standingID string) (standing.Standing, bool, error) {
	return r.next.GetByID(ctx, standingID)
}

func (r *StandingRepository) Update(ctx context.Context, standingID string, patch standing.Patch) (standing.Standing, bool, error) {
	item, exists, err := r.next.Update(ctx, standingID, patch)
	if err != nil {
		return standing.Standing{}, false, err
	}
	if exists {
		r.cache.Delete(ctx, standingByGroupPrefix+item.GroupID)
	}
	return item, exists, nil
}

func (r *StandingRepository) ListByGroup(ctx context.Context, groupID string) ([]standing.Row, error) {
	v, err := r.cache.GetOrLoad(ctx, standingByGroupPrefix+groupID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return append([]standing.Row(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standing.Row)
	return append([]standing.Row(nil), items...), nil
}

// SetQualified only knows standing ids, so every cached table is dropped.
func (r *StandingRepository) SetQualified(ctx context.Context, standingIDs []string, qualified bool) error {
	if err := r.next.SetQualified(ctx, standingIDs, qualified); err != nil {
		return err
	}

	if len(standingIDs) > 0 {
		r.cache.DeletePrefix(ctx, standingByGroupPrefix)
	}
	return nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, teamByIDPrefix+item.ID, teamListByTournPrefix+item.TournamentID)
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, teamByIDPrefix+teamID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

// ListByIDs reads through; status writes during a recompute must be visible at once.
func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	return r.next.ListByIDs(ctx, teamIDs)
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamListByTournPrefix+tournamentID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) UpdateStatus(ctx context.Context, teamID string, status team.Status) error {
	if err := r.next.UpdateStatus(ctx, teamID, status); err != nil {
		return err
	}

	r.invalidateTeam(ctx, teamID)
	return nil
}

func (r *TeamRepository) UpdateGroupName(ctx context.Context, teamID, groupName string) error {
	if err := r.next.UpdateGroupName(ctx, teamID, groupName); err != nil {
		return err
	}

	r.invalidateTeam(ctx, teamID)
	return nil
}

func (r *TeamRepository) AddMember(ctx context.Context, member team.Member) error {
	if err := r.next.AddMember(ctx, member); err != nil {
		return err
	}

	r.cache.Delete(ctx, teamMembersPrefix+member.TeamID)
	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) (bool, error) {
	removed, err := r.next.RemoveMember(ctx, teamID, userID)
	if err != nil {
		return false, err
	}
	if removed {
		r.cache.Delete(ctx, teamMembersPrefix+teamID)
	}
	return removed, nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	v, err := r.cache.GetOrLoad(ctx, teamMembersPrefix+teamID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListMembers(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]team.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Member)
	return append([]team.Member(nil), items...), nil
}

// invalidateTeam drops the team row and every tournament list, since only the id is known.
func (r *TeamRepository) invalidateTeam(ctx context.Context, teamID string) {
	r.cache.Delete(ctx, teamByIDPrefix+teamID)
	r.cache.DeletePrefix(ctx, teamListByTournPrefix)
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

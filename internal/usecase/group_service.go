package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/group"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	idgen "github.com/riskibarqy/tournament-hub/internal/platform/id"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

type AssignTeamInput struct {
	TeamID    string
	GroupID   string
	GroupName string
}

// GroupTable is a group with its ranked standings.
type GroupTable struct {
	Group     group.Group
	Standings []standing.Row
}

type GroupService struct {
	tournamentRepo tournament.Repository
	groupRepo      group.Repository
	standingRepo   standing.Repository
	teamRepo       team.Repository
	tieBreak       standing.TieBreak
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewGroupService(
	tournamentRepo tournament.Repository,
	groupRepo group.Repository,
	standingRepo standing.Repository,
	teamRepo team.Repository,
	tieBreak standing.TieBreak,
	idGen idgen.Generator,
	logger *logging.Logger,
) *GroupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GroupService{
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		standingRepo:   standingRepo,
		teamRepo:       teamRepo,
		tieBreak:       tieBreak,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// CreateGroups inserts count groups named "Group A", "Group B", ... in one batch.
// Calling it twice for the same tournament creates a second set of groups.
func (s *GroupService) CreateGroups(ctx context.Context, tournamentID string, count int) ([]group.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupService.CreateGroups")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	if count <= 0 || count > tournament.MaxGroups {
		return nil, fmt.Errorf("%w: group count must be within 1..%d", ErrInvalidInput, tournament.MaxGroups)
	}

	_, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %v: tournament=%s", ErrInvalidInput, group.ErrUnknownTournament, tournamentID)
	}

	now := s.now().UTC()
	items := make([]group.Group, 0, count)
	for _, name := range group.Names(count) {
		id, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate group id: %w", err)
		}
		item := group.Group{
			ID:           id,
			TournamentID: tournamentID,
			Name:         name,
			CreatedAt:    now,
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		items = append(items, item)
	}

	if err := s.groupRepo.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("create groups: %w", mapStoreError(err))
	}

	s.logger.InfoContext(ctx, "groups created", "tournament_id", tournamentID, "count", len(items))
	return items, nil
}

// AssignTeam places a team in a group with a zeroed standing and syncs team.group_name.
// It does not run qualification; the new row is evaluated on the next standing update
// or an explicit tournament recompute.
func (s *GroupService) AssignTeam(ctx context.Context, input AssignTeamInput) (standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupService.AssignTeam")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.GroupID = strings.TrimSpace(input.GroupID)
	input.GroupName = strings.TrimSpace(input.GroupName)
	if input.TeamID == "" {
		return standing.Standing{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.GroupID == "" {
		return standing.Standing{}, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}

	grp, exists, err := s.groupRepo.GetByID(ctx, input.GroupID)
	if err != nil {
		return standing.Standing{}, fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return standing.Standing{}, fmt.Errorf("%w: group=%s", ErrNotFound, input.GroupID)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return standing.Standing{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return standing.Standing{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}
	if item.TournamentID != grp.TournamentID {
		return standing.Standing{}, fmt.Errorf("%w: team=%s is not in tournament=%s", ErrInvalidInput, item.ID, grp.TournamentID)
	}

	groupName := input.GroupName
	if groupName == "" {
		groupName = grp.Name
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return standing.Standing{}, fmt.Errorf("generate standing id: %w", err)
	}

	// group_name goes first so a failed sync never leaves an orphan standing.
	if err := s.teamRepo.UpdateGroupName(ctx, item.ID, groupName); err != nil {
		return standing.Standing{}, fmt.Errorf("update team group name: %w", err)
	}

	row := standing.Zeroed(id, grp.ID, item.ID, s.now().UTC())
	if err := s.standingRepo.Create(ctx, row); err != nil {
		if item.GroupName != groupName {
			if restoreErr := s.teamRepo.UpdateGroupName(ctx, item.ID, item.GroupName); restoreErr != nil {
				s.logger.WarnContext(ctx, "restore team group name failed", "team_id", item.ID, "error", restoreErr)
			}
		}
		return standing.Standing{}, fmt.Errorf("create standing: %w", mapStoreError(err))
	}

	s.logger.InfoContext(ctx, "team assigned to group",
		"team_id", item.ID,
		"group_id", grp.ID,
		"group_name", groupName,
	)
	return row, nil
}

// ListTables returns every group of a tournament with its ranked standings.
func (s *GroupService) ListTables(ctx context.Context, tournamentID string) ([]GroupTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupService.ListTables")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	groups, err := s.groupRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	out := make([]GroupTable, 0, len(groups))
	for _, grp := range groups {
		rows, err := s.standingRepo.ListByGroup(ctx, grp.ID)
		if err != nil {
			return nil, fmt.Errorf("list standings group=%s: %w", grp.ID, err)
		}
		out = append(out, GroupTable{
			Group:     grp,
			Standings: standing.Rank(rows, s.tieBreak),
		})
	}
	return out, nil
}

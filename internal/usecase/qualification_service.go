package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tournament-hub/internal/domain/event"
	"github.com/riskibarqy/tournament-hub/internal/domain/group"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

const (
	recomputeOutcomeSuccess = "success"
	recomputeOutcomeFailed  = "failed"

	maxRecomputeWorkers = 8
)

// QualificationMetrics observes recompute runs.
type QualificationMetrics interface {
	ObserveRecompute(outcome string, duration time.Duration)
}

type nopQualificationMetrics struct{}

func (nopQualificationMetrics) ObserveRecompute(string, time.Duration) {}

type QualificationConfig struct {
	TieBreak       standing.TieBreak
	DefaultAdvance int
	Workers        int
}

// RecomputeResult describes one group's qualification pass.
type RecomputeResult struct {
	GroupID          string
	TournamentID     string
	Advance          int
	StandingCount    int
	QualifiedTeamIDs []string
	PromotedTeamIDs  []string
	RevertedTeamIDs  []string
}

type TournamentRecomputeResult struct {
	TournamentID string
	GroupCount   int
	FailedCount  int
	WorkerCount  int
	Groups       []RecomputeResult
}

// QualificationService keeps is_qualified flags and team statuses in line with group tables.
type QualificationService struct {
	tournamentRepo tournament.Repository
	groupRepo      group.Repository
	standingRepo   standing.Repository
	teamRepo       team.Repository
	cfg            QualificationConfig
	metrics        QualificationMetrics
	logger         *logging.Logger
}

func NewQualificationService(
	tournamentRepo tournament.Repository,
	groupRepo group.Repository,
	standingRepo standing.Repository,
	teamRepo team.Repository,
	cfg QualificationConfig,
	metrics QualificationMetrics,
	logger *logging.Logger,
) *QualificationService {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = nopQualificationMetrics{}
	}
	if cfg.TieBreak == "" {
		cfg.TieBreak = standing.TieBreakStats
	}

	return &QualificationService{
		tournamentRepo: tournamentRepo,
		groupRepo:      groupRepo,
		standingRepo:   standingRepo,
		teamRepo:       teamRepo,
		cfg:            cfg,
		metrics:        metrics,
		logger:         logger,
	}
}

// HandleStandingUpdated is the event consumer entry point.
func (s *QualificationService) HandleStandingUpdated(ctx context.Context, evt event.StandingUpdated) error {
	_, err := s.RecomputeGroup(ctx, evt.GroupID)
	return err
}

// RecomputeGroup ranks the group, writes is_qualified in two batches and syncs team statuses.
// Concurrent runs for the same group are last-writer-wins.
func (s *QualificationService) RecomputeGroup(ctx context.Context, groupID string) (result RecomputeResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QualificationService.RecomputeGroup")
	defer span.End()

	start := time.Now()
	defer func() {
		outcome := recomputeOutcomeSuccess
		if err != nil {
			outcome = recomputeOutcomeFailed
			s.logger.ErrorContext(ctx, "qualification recompute failed", "group_id", groupID, "error", err)
		}
		s.metrics.ObserveRecompute(outcome, time.Since(start))
	}()

	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return RecomputeResult{}, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}

	grp, exists, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return RecomputeResult{}, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}

	tour, exists, err := s.tournamentRepo.GetByID(ctx, grp.TournamentID)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return RecomputeResult{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, grp.TournamentID)
	}
	advance := tour.AdvancePerGroup(s.cfg.DefaultAdvance)

	rows, err := s.standingRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list group standings: %w", err)
	}

	outcome := standing.ComputeQualification(rows, advance, s.cfg.TieBreak)
	if ids := outcome.QualifiedStandingIDs(); len(ids) > 0 {
		if err := s.standingRepo.SetQualified(ctx, ids, true); err != nil {
			return RecomputeResult{}, fmt.Errorf("mark qualified standings: %w", err)
		}
	}
	if ids := outcome.EliminatedStandingIDs(); len(ids) > 0 {
		if err := s.standingRepo.SetQualified(ctx, ids, false); err != nil {
			return RecomputeResult{}, fmt.Errorf("clear qualified standings: %w", err)
		}
	}

	result = RecomputeResult{
		GroupID:          groupID,
		TournamentID:     grp.TournamentID,
		Advance:          advance,
		StandingCount:    len(rows),
		QualifiedTeamIDs: rowTeamIDs(outcome.Qualified),
	}

	promoted, reverted, err := s.syncTeamStatuses(ctx, outcome)
	result.PromotedTeamIDs = promoted
	result.RevertedTeamIDs = reverted
	if err != nil {
		return result, err
	}

	s.logger.InfoContext(ctx, "qualification recomputed",
		"group_id", groupID,
		"tournament_id", grp.TournamentID,
		"advance", advance,
		"standings", len(rows),
		"promoted", len(promoted),
		"reverted", len(reverted),
	)
	return result, nil
}

func (s *QualificationService) syncTeamStatuses(ctx context.Context, outcome standing.Qualification) ([]string, []string, error) {
	teamIDs := rowTeamIDs(outcome.Ranked)
	if len(teamIDs) == 0 {
		return nil, nil, nil
	}

	teams, err := s.teamRepo.ListByIDs(ctx, teamIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("list group teams: %w", err)
	}
	current := make(map[string]team.Status, len(teams))
	for _, item := range teams {
		current[item.ID] = item.Status
	}

	var errs []error
	apply := func(teamID string, target team.Status) bool {
		status, ok := current[teamID]
		if !ok {
			return false
		}
		next, write := team.Transition(status, target, team.SourceQualification)
		if !write {
			return false
		}
		if err := s.teamRepo.UpdateStatus(ctx, teamID, next); err != nil {
			errs = append(errs, fmt.Errorf("update team=%s status=%s: %w", teamID, next, err))
			return false
		}
		return true
	}

	promoted := make([]string, 0)
	for _, row := range outcome.Qualified {
		if apply(row.TeamID, team.StatusQualified) {
			promoted = append(promoted, row.TeamID)
		}
	}
	reverted := make([]string, 0)
	for _, row := range outcome.Eliminated {
		if apply(row.TeamID, team.StatusRegistered) {
			reverted = append(reverted, row.TeamID)
		}
	}

	return promoted, reverted, errors.Join(errs...)
}

// RecomputeTournament reruns qualification for every group of a tournament.
// Failed groups are logged and counted; they do not stop the others.
func (s *QualificationService) RecomputeTournament(ctx context.Context, tournamentID string) (TournamentRecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QualificationService.RecomputeTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return TournamentRecomputeResult{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	if _, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return TournamentRecomputeResult{}, fmt.Errorf("get tournament: %w", err)
	} else if !exists {
		return TournamentRecomputeResult{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}

	groups, err := s.groupRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return TournamentRecomputeResult{}, fmt.Errorf("list tournament groups: %w", err)
	}

	workerCount := normalizeRecomputeWorkerCount(s.cfg.Workers, len(groups))
	result := TournamentRecomputeResult{
		TournamentID: tournamentID,
		GroupCount:   len(groups),
		WorkerCount:  workerCount,
		Groups:       make([]RecomputeResult, 0, len(groups)),
	}
	if len(groups) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return TournamentRecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan RecomputeResult, len(groups))
	var failed atomic.Int32
	var workers sync.WaitGroup
	for _, grp := range groups {
		grp := grp
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			row, err := s.RecomputeGroup(ctx, grp.ID)
			if err != nil {
				failed.Add(1)
				return
			}
			results <- row
		}); err != nil {
			workers.Done()
			return TournamentRecomputeResult{}, fmt.Errorf("submit recompute to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Groups = append(result.Groups, row)
	}
	sort.SliceStable(result.Groups, func(i, j int) bool {
		return result.Groups[i].GroupID < result.Groups[j].GroupID
	})
	result.FailedCount = int(failed.Load())

	return result, nil
}

func normalizeRecomputeWorkerCount(value, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > maxRecomputeWorkers {
		value = maxRecomputeWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}

func rowTeamIDs(rows []standing.Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.TeamID)
	}
	return out
}

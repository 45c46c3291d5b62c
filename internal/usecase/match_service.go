package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/bracket"
	"github.com/riskibarqy/tournament-hub/internal/domain/match"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	idgen "github.com/riskibarqy/tournament-hub/internal/platform/id"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

type CreateMatchInput struct {
	TournamentID    string
	GroupID         string
	Team1ID         string
	Team2ID         string
	MatchType       tournament.MatchType
	Stage           match.Stage
	BracketRound    *int
	BracketPosition *int
	ScheduledAt     *time.Time
}

type RecordResultInput struct {
	MatchID string
	Result  match.Result
}

type MatchService struct {
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	teamRepo       team.Repository
	slotHeight     int
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewMatchService(
	tournamentRepo tournament.Repository,
	matchRepo match.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		slotHeight:     bracket.DefaultSlotHeight,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	tour, err := s.tournament(ctx, input.TournamentID)
	if err != nil {
		return match.Match{}, err
	}
	if input.MatchType == "" {
		input.MatchType = tour.MatchType
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	now := s.now().UTC()
	item := match.Match{
		ID:              id,
		TournamentID:    tour.ID,
		GroupID:         strings.TrimSpace(input.GroupID),
		Team1ID:         strings.TrimSpace(input.Team1ID),
		Team2ID:         strings.TrimSpace(input.Team2ID),
		MatchType:       input.MatchType,
		Stage:           input.Stage,
		BracketRound:    input.BracketRound,
		BracketPosition: input.BracketPosition,
		ScheduledAt:     input.ScheduledAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", mapStoreError(err))
	}
	return item, nil
}

// RecordResult stores scores and the winner, marking the match completed now.
func (s *MatchService) RecordResult(ctx context.Context, input RecordResultInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult")
	defer span.End()

	matchID := strings.TrimSpace(input.MatchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	input.Result.WinnerID = strings.TrimSpace(input.Result.WinnerID)
	if err := input.Result.ValidateFor(item); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated := input.Result.Apply(item, s.now().UTC())
	if err := s.matchRepo.SaveResult(ctx, updated); err != nil {
		return match.Match{}, fmt.Errorf("save match result: %w", err)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		"match_id", updated.ID,
		"team1_score", updated.Team1Score,
		"team2_score", updated.Team2Score,
		"winner_id", updated.WinnerID,
	)
	return updated, nil
}

func (s *MatchService) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	if _, err := s.tournament(ctx, filter.TournamentID); err != nil {
		return nil, err
	}
	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

// Bracket lays out the knockout stage of a tournament.
func (s *MatchService) Bracket(ctx context.Context, tournamentID string) ([]bracket.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Bracket")
	defer span.End()

	tour, err := s.tournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	items, err := s.matchRepo.List(ctx, match.ListFilter{TournamentID: tour.ID, Stage: match.StageKnockout})
	if err != nil {
		return nil, fmt.Errorf("list knockout matches: %w", err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tour.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	names := make(map[string]string, len(teams))
	for _, item := range teams {
		names[item.ID] = item.Name
	}

	slots := make([]bracket.Slot, 0, len(items))
	for _, item := range items {
		if item.BracketRound == nil || item.BracketPosition == nil {
			continue
		}
		slots = append(slots, bracket.Slot{
			MatchID:     item.ID,
			Round:       *item.BracketRound,
			Position:    *item.BracketPosition,
			Team1ID:     item.Team1ID,
			Team1Name:   names[item.Team1ID],
			Team1Score:  item.Team1Score,
			Team2ID:     item.Team2ID,
			Team2Name:   names[item.Team2ID],
			Team2Score:  item.Team2Score,
			WinnerID:    item.WinnerID,
			IsCompleted: item.IsCompleted,
		})
	}

	return bracket.Layout(slots, bracket.TotalRounds(slots), s.slotHeight), nil
}

func (s *MatchService) tournament(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	tour, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	return tour, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	idgen "github.com/riskibarqy/tournament-hub/internal/platform/id"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

type CreateTournamentInput struct {
	Name                  string
	Description           string
	StartDate             time.Time
	EndDate               *time.Time
	MaxTeams              int
	TeamSize              int
	EntryFee              float64
	PlatformFeePercentage float64
	Type                  tournament.Type
	MatchType             tournament.MatchType
	NumGroups             *int
	TeamsPerGroupQualify  *int
	PrizePool             float64
	PrizeDistribution     tournament.PrizeDistribution
	BannerURL             string
}

type TournamentService struct {
	tournamentRepo tournament.Repository
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewTournamentService(tournamentRepo tournament.Repository, idGen idgen.Generator, logger *logging.Logger) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	id, err := s.idGen.NewID()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("generate tournament id: %w", err)
	}

	if input.Type == "" {
		input.Type = tournament.TypeGroupKnockout
	}
	if input.MatchType == "" {
		input.MatchType = tournament.MatchTypeBO1
	}
	if len(input.PrizeDistribution) == 0 {
		input.PrizeDistribution = tournament.DefaultPrizeDistribution()
	}

	now := s.now().UTC()
	item := tournament.Tournament{
		ID:                    id,
		Name:                  strings.TrimSpace(input.Name),
		Description:           strings.TrimSpace(input.Description),
		StartDate:             input.StartDate,
		EndDate:               input.EndDate,
		MaxTeams:              input.MaxTeams,
		TeamSize:              input.TeamSize,
		EntryFee:              input.EntryFee,
		PlatformFeePercentage: input.PlatformFeePercentage,
		Type:                  input.Type,
		MatchType:             input.MatchType,
		Status:                tournament.StatusUpcoming,
		NumGroups:             input.NumGroups,
		TeamsPerGroupQualify:  input.TeamsPerGroupQualify,
		PrizePool:             input.PrizePool,
		PrizeDistribution:     input.PrizeDistribution,
		BannerURL:             strings.TrimSpace(input.BannerURL),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := item.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.tournamentRepo.Create(ctx, item); err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", mapStoreError(err))
	}

	s.logger.InfoContext(ctx, "tournament created", "tournament_id", item.ID, "type", item.Type)
	return item, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	item, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	return item, nil
}

func (s *TournamentService) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown tournament status %q", ErrInvalidInput, filter.Status)
	}
	items, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

// UpdateStatus moves the lifecycle forward or cancels the tournament.
func (s *TournamentService) UpdateStatus(ctx context.Context, tournamentID string, status tournament.Status) (tournament.Tournament, error) {
	item, err := s.Get(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, err
	}
	if !item.Status.CanTransition(status) {
		return tournament.Tournament{}, fmt.Errorf("%w: cannot move tournament from %s to %s", ErrInvalidInput, item.Status, status)
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, item.ID, status); err != nil {
		return tournament.Tournament{}, fmt.Errorf("update tournament status: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament status updated", "tournament_id", item.ID, "from", item.Status, "to", status)
	item.Status = status
	return item, nil
}

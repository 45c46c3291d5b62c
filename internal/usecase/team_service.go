package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	idgen "github.com/riskibarqy/tournament-hub/internal/platform/id"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

type CreateTeamInput struct {
	TournamentID  string
	Name          string
	LogoURL       string
	CaptainID     string
	CaptainRiotID string
}

type TeamService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewTeamService(tournamentRepo tournament.Repository, teamRepo team.Repository, idGen idgen.Generator, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// Create registers a new incomplete team and puts its captain on the roster.
func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.Name = strings.TrimSpace(input.Name)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	if input.CaptainID == "" {
		return team.Team{}, fmt.Errorf("%w: captain id is required", ErrUnauthorized)
	}

	tour, exists, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, input.TournamentID)
	}
	if tour.IsLocked {
		return team.Team{}, fmt.Errorf("%w: tournament=%s is locked", ErrInvalidInput, tour.ID)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	now := s.now().UTC()
	item := team.Team{
		ID:           id,
		TournamentID: tour.ID,
		Name:         input.Name,
		LogoURL:      strings.TrimSpace(input.LogoURL),
		CaptainID:    input.CaptainID,
		Status:       team.StatusIncomplete,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", mapStoreError(err))
	}

	memberID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate member id: %w", err)
	}
	captain := team.Member{
		ID:       memberID,
		TeamID:   item.ID,
		UserID:   item.CaptainID,
		RiotID:   strings.TrimSpace(input.CaptainRiotID),
		Role:     team.RoleCaptain,
		JoinedAt: now,
	}
	if err := s.teamRepo.AddMember(ctx, captain); err != nil {
		return team.Team{}, fmt.Errorf("add captain: %w", mapStoreError(err))
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "tournament_id", item.TournamentID)
	return item, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *TeamService) ListByTournament(ctx context.Context, tournamentID string) ([]team.Team, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	items, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) ListMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	if _, err := s.Get(ctx, teamID); err != nil {
		return nil, err
	}

	items, err := s.teamRepo.ListMembers(ctx, strings.TrimSpace(teamID))
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return items, nil
}

// Leave removes a non-captain member from the roster.
func (s *TeamService) Leave(ctx context.Context, teamID, userID string) error {
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if item.CaptainID == userID {
		return fmt.Errorf("%w: the captain cannot leave the team", ErrInvalidInput)
	}
	if item.IsLocked {
		return fmt.Errorf("%w: team=%s is locked", ErrInvalidInput, item.ID)
	}

	removed, err := s.teamRepo.RemoveMember(ctx, item.ID, userID)
	if err != nil {
		return fmt.Errorf("remove team member: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: user=%s is not on team=%s", ErrNotFound, userID, item.ID)
	}
	return nil
}

// SetStatus is the admin override; it outranks every automatic writer.
func (s *TeamService) SetStatus(ctx context.Context, teamID string, status team.Status) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SetStatus")
	defer span.End()

	if !status.Valid() {
		return team.Team{}, fmt.Errorf("%w: unknown team status %q", ErrInvalidInput, status)
	}
	item, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	next, write := team.Transition(item.Status, status, team.SourceAdmin)
	if !write {
		return item, nil
	}
	if err := s.teamRepo.UpdateStatus(ctx, item.ID, next); err != nil {
		return team.Team{}, fmt.Errorf("update team status: %w", err)
	}

	s.logger.InfoContext(ctx, "team status overridden", "team_id", item.ID, "from", item.Status, "to", next)
	item.Status = next
	return item, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/joinrequest"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	idgen "github.com/riskibarqy/tournament-hub/internal/platform/id"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

type CreateJoinRequestInput struct {
	TeamID  string
	UserID  string
	RiotID  string
	Message string
}

type RespondJoinRequestInput struct {
	RequestID  string
	ReviewerID string
	Approve    bool
	AsAdmin    bool
}

type JoinRequestService struct {
	teamRepo    team.Repository
	requestRepo joinrequest.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewJoinRequestService(teamRepo team.Repository, requestRepo joinrequest.Repository, idGen idgen.Generator, logger *logging.Logger) *JoinRequestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &JoinRequestService{
		teamRepo:    teamRepo,
		requestRepo: requestRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// Create files a pending request. A second request by the same user is a conflict.
func (s *JoinRequestService) Create(ctx context.Context, input CreateJoinRequestInput) (joinrequest.Request, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return joinrequest.Request{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, strings.TrimSpace(input.TeamID))
	if err != nil {
		return joinrequest.Request{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return joinrequest.Request{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}
	if item.IsLocked {
		return joinrequest.Request{}, fmt.Errorf("%w: team=%s is locked", ErrInvalidInput, item.ID)
	}
	if item.CaptainID == input.UserID {
		return joinrequest.Request{}, fmt.Errorf("%w: captain is already on the team", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return joinrequest.Request{}, fmt.Errorf("generate join request id: %w", err)
	}
	req := joinrequest.Request{
		ID:        id,
		TeamID:    item.ID,
		UserID:    input.UserID,
		RiotID:    strings.TrimSpace(input.RiotID),
		Message:   strings.TrimSpace(input.Message),
		Status:    joinrequest.StatusPending,
		CreatedAt: s.now().UTC(),
	}
	if err := req.Validate(); err != nil {
		return joinrequest.Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return joinrequest.Request{}, fmt.Errorf("create join request: %w", mapStoreError(err))
	}

	s.logger.InfoContext(ctx, "join request created", "request_id", req.ID, "team_id", req.TeamID, "user_id", req.UserID)
	return req, nil
}

func (s *JoinRequestService) ListByTeam(ctx context.Context, teamID string) ([]joinrequest.Request, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	items, err := s.requestRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list join requests: %w", err)
	}
	return items, nil
}

// Respond lets the captain (or an admin) accept or decline a pending request.
// Accepting adds the requester to the roster as a player.
func (s *JoinRequestService) Respond(ctx context.Context, input RespondJoinRequestInput) (joinrequest.Request, error) {
	input.ReviewerID = strings.TrimSpace(input.ReviewerID)
	if input.ReviewerID == "" {
		return joinrequest.Request{}, fmt.Errorf("%w: reviewer id is required", ErrUnauthorized)
	}

	req, exists, err := s.requestRepo.GetByID(ctx, strings.TrimSpace(input.RequestID))
	if err != nil {
		return joinrequest.Request{}, fmt.Errorf("get join request: %w", err)
	}
	if !exists {
		return joinrequest.Request{}, fmt.Errorf("%w: join request=%s", ErrNotFound, input.RequestID)
	}
	if req.Status != joinrequest.StatusPending {
		return joinrequest.Request{}, fmt.Errorf("%w: join request=%s is already %s", ErrInvalidInput, req.ID, req.Status)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, req.TeamID)
	if err != nil {
		return joinrequest.Request{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return joinrequest.Request{}, fmt.Errorf("%w: team=%s", ErrNotFound, req.TeamID)
	}
	if !input.AsAdmin && item.CaptainID != input.ReviewerID {
		return joinrequest.Request{}, fmt.Errorf("%w: only the captain can respond", ErrForbidden)
	}

	status := joinrequest.StatusRejected
	if input.Approve {
		status = joinrequest.StatusApproved
		memberID, err := s.idGen.NewID()
		if err != nil {
			return joinrequest.Request{}, fmt.Errorf("generate member id: %w", err)
		}
		member := team.Member{
			ID:       memberID,
			TeamID:   item.ID,
			UserID:   req.UserID,
			RiotID:   req.RiotID,
			Role:     team.RolePlayer,
			JoinedAt: s.now().UTC(),
		}
		if err := s.teamRepo.AddMember(ctx, member); err != nil {
			return joinrequest.Request{}, fmt.Errorf("add team member: %w", mapStoreError(err))
		}
	}

	reviewedAt := s.now().UTC()
	if err := s.requestRepo.SetStatus(ctx, req.ID, status, input.ReviewerID, reviewedAt); err != nil {
		return joinrequest.Request{}, fmt.Errorf("update join request: %w", err)
	}

	req.Status = status
	req.ReviewedBy = input.ReviewerID
	req.ReviewedAt = &reviewedAt
	return req, nil
}

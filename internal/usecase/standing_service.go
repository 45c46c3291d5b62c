package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/event"
	"github.com/riskibarqy/tournament-hub/internal/domain/group"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

// UpdateStandingInput is the admin score edit for one standing row.
type UpdateStandingInput struct {
	StandingID string
	Patch      standing.Patch
}

type StandingService struct {
	groupRepo    group.Repository
	standingRepo standing.Repository
	publisher    event.Publisher
	tieBreak     standing.TieBreak
	logger       *logging.Logger
	now          func() time.Time
}

func NewStandingService(
	groupRepo group.Repository,
	standingRepo standing.Repository,
	publisher event.Publisher,
	tieBreak standing.TieBreak,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingService{
		groupRepo:    groupRepo,
		standingRepo: standingRepo,
		publisher:    publisher,
		tieBreak:     tieBreak,
		logger:       logger,
		now:          time.Now,
	}
}

// UpdateStanding writes the provided fields and announces the change.
// Qualification runs downstream of the announcement; its outcome never fails this call.
func (s *StandingService) UpdateStanding(ctx context.Context, input UpdateStandingInput) (standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.UpdateStanding")
	defer span.End()

	input.StandingID = strings.TrimSpace(input.StandingID)
	if input.StandingID == "" {
		return standing.Standing{}, fmt.Errorf("%w: standing id is required", ErrInvalidInput)
	}
	if input.Patch.Empty() {
		return standing.Standing{}, fmt.Errorf("%w: at least one standing field is required", ErrInvalidInput)
	}
	if err := input.Patch.Validate(); err != nil {
		return standing.Standing{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, exists, err := s.standingRepo.Update(ctx, input.StandingID, input.Patch)
	if err != nil {
		return standing.Standing{}, fmt.Errorf("update standing: %w", err)
	}
	if !exists {
		return standing.Standing{}, fmt.Errorf("%w: standing=%s", ErrNotFound, input.StandingID)
	}

	s.logger.InfoContext(ctx, "standing updated",
		"standing_id", updated.ID,
		"group_id", updated.GroupID,
		"team_id", updated.TeamID,
		"points", updated.Points,
	)

	if s.publisher != nil {
		evt := event.StandingUpdated{
			StandingID: updated.ID,
			GroupID:    updated.GroupID,
			OccurredAt: s.now().UTC(),
		}
		if err := s.publisher.PublishStandingUpdated(ctx, evt); err != nil {
			s.logger.ErrorContext(ctx, "publish standing updated failed",
				"standing_id", updated.ID,
				"group_id", updated.GroupID,
				"error", err,
			)
		}
	}

	return updated, nil
}

// ListByGroup returns the group table in qualification order.
func (s *StandingService) ListByGroup(ctx context.Context, groupID string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListByGroup")
	defer span.End()

	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return nil, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}

	_, exists, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}

	rows, err := s.standingRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group standings: %w", err)
	}

	return standing.Rank(rows, s.tieBreak), nil
}

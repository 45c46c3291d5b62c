package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/payment"
	"github.com/riskibarqy/tournament-hub/internal/domain/profile"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	idgen "github.com/riskibarqy/tournament-hub/internal/platform/id"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultSignedURLTTL = time.Hour

	maxSignURLWorkers = 8
)

type SubmitPaymentInput struct {
	UserID        string
	TeamID        string
	TournamentID  string
	Amount        float64
	ScreenshotKey string
	PaymentMethod string
}

type ReviewPaymentInput struct {
	PaymentID  string
	ReviewerID string
	Status     payment.Status
	AdminNotes string
}

// PaymentView is a payment with a short-lived screenshot link.
type PaymentView struct {
	payment.Payment
	ScreenshotSignedURL string
}

type PaymentService struct {
	paymentRepo  payment.Repository
	teamRepo     team.Repository
	profileRepo  profile.Repository
	screenshots  FileStore
	signedURLTTL time.Duration
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewPaymentService(
	paymentRepo payment.Repository,
	teamRepo team.Repository,
	profileRepo profile.Repository,
	screenshots FileStore,
	signedURLTTL time.Duration,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PaymentService {
	if logger == nil {
		logger = logging.Default()
	}
	if signedURLTTL <= 0 {
		signedURLTTL = DefaultSignedURLTTL
	}

	return &PaymentService{
		paymentRepo:  paymentRepo,
		teamRepo:     teamRepo,
		profileRepo:  profileRepo,
		screenshots:  screenshots,
		signedURLTTL: signedURLTTL,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

// UploadScreenshot stores a payment proof and returns its storage key, not a URL.
func (s *PaymentService) UploadScreenshot(ctx context.Context, userID, filename, contentType string, body io.Reader) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.UploadScreenshot")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if body == nil {
		return "", fmt.Errorf("%w: screenshot file is required", ErrInvalidInput)
	}
	if s.screenshots == nil {
		return "", fmt.Errorf("%w: screenshot storage is not configured", ErrDependencyUnavailable)
	}

	key := objectKey(userID, filename, s.now())
	if err := s.screenshots.Put(ctx, key, contentType, body); err != nil {
		return "", fmt.Errorf("%w: upload screenshot: %v", ErrDependencyUnavailable, err)
	}
	return key, nil
}

// Submit records a pending payment and moves an incomplete team to pending_payment.
func (s *PaymentService) Submit(ctx context.Context, input SubmitPaymentInput) (payment.Payment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.Submit")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.ScreenshotKey = strings.TrimSpace(input.ScreenshotKey)
	if input.UserID == "" {
		return payment.Payment{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return payment.Payment{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}
	if input.TournamentID == "" {
		input.TournamentID = item.TournamentID
	}
	if item.TournamentID != input.TournamentID {
		return payment.Payment{}, fmt.Errorf("%w: team=%s is not in tournament=%s", ErrInvalidInput, item.ID, input.TournamentID)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("generate payment id: %w", err)
	}
	now := s.now().UTC()
	record := payment.Payment{
		ID:            id,
		UserID:        input.UserID,
		TeamID:        item.ID,
		TournamentID:  item.TournamentID,
		Amount:        input.Amount,
		ScreenshotURL: input.ScreenshotKey,
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
		Status:        payment.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := record.Validate(); err != nil {
		return payment.Payment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		return payment.Payment{}, fmt.Errorf("create payment: %w", mapStoreError(err))
	}

	s.transitionTeam(ctx, item.ID, team.StatusPendingPayment, team.SourcePaymentSubmission)

	s.logger.InfoContext(ctx, "payment submitted", "payment_id", record.ID, "team_id", record.TeamID, "amount", record.Amount)
	return record, nil
}

// Review stores an admin decision. Approval registers the team; rejection only bans
// the payer and leaves the team status alone. Cascade failures are logged only.
func (s *PaymentService) Review(ctx context.Context, input ReviewPaymentInput) (payment.Payment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.Review")
	defer span.End()

	input.PaymentID = strings.TrimSpace(input.PaymentID)
	input.ReviewerID = strings.TrimSpace(input.ReviewerID)
	if input.PaymentID == "" {
		return payment.Payment{}, fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	}
	if input.ReviewerID == "" {
		return payment.Payment{}, fmt.Errorf("%w: reviewer id is required", ErrUnauthorized)
	}
	if input.Status != payment.StatusApproved && input.Status != payment.StatusRejected {
		return payment.Payment{}, fmt.Errorf("%w: review status must be approved or rejected", ErrInvalidInput)
	}

	current, exists, err := s.paymentRepo.GetByID(ctx, input.PaymentID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("get payment: %w", err)
	}
	if !exists {
		return payment.Payment{}, fmt.Errorf("%w: payment=%s", ErrNotFound, input.PaymentID)
	}
	if !current.Status.Reviewable(input.Status) {
		return payment.Payment{}, fmt.Errorf("%w: payment=%s is already %s", ErrInvalidInput, current.ID, current.Status)
	}

	updated, err := s.paymentRepo.SaveReview(ctx, current.ID, payment.Review{
		Status:     input.Status,
		AdminNotes: strings.TrimSpace(input.AdminNotes),
		ReviewedBy: input.ReviewerID,
		ReviewedAt: s.now().UTC(),
	})
	if err != nil {
		return payment.Payment{}, fmt.Errorf("save payment review: %w", err)
	}

	switch input.Status {
	case payment.StatusApproved:
		s.transitionTeam(ctx, updated.TeamID, team.StatusRegistered, team.SourcePaymentApproval)
	case payment.StatusRejected:
		if err := s.profileRepo.SetBanned(ctx, updated.UserID, true); err != nil {
			s.logger.WarnContext(ctx, "ban payer failed", "payment_id", updated.ID, "user_id", updated.UserID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "payment reviewed",
		"payment_id", updated.ID,
		"status", updated.Status,
		"reviewed_by", input.ReviewerID,
	)
	return updated, nil
}

func (s *PaymentService) transitionTeam(ctx context.Context, teamID string, target team.Status, source team.Source) {
	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil || !exists {
		s.logger.WarnContext(ctx, "load team for payment cascade failed", "team_id", teamID, "error", err)
		return
	}

	next, write := team.Transition(item.Status, target, source)
	if !write {
		return
	}
	if err := s.teamRepo.UpdateStatus(ctx, item.ID, next); err != nil {
		s.logger.WarnContext(ctx, "payment cascade team status failed", "team_id", item.ID, "status", next, "error", err)
	}
}

func (s *PaymentService) List(ctx context.Context, filter payment.ListFilter) ([]PaymentView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.List")
	defer span.End()

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, filter.Status)
	}

	items, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return s.withSignedURLs(ctx, items), nil
}

func (s *PaymentService) ListMine(ctx context.Context, userID string) ([]PaymentView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	return s.List(ctx, payment.ListFilter{UserID: userID})
}

// withSignedURLs resolves screenshot keys concurrently. Absolute URLs pass through;
// a failed signature leaves the link empty.
func (s *PaymentService) withSignedURLs(ctx context.Context, items []payment.Payment) []PaymentView {
	out := make([]PaymentView, len(items))
	p := pool.New().WithMaxGoroutines(maxSignURLWorkers)
	for i := range items {
		i := i
		out[i].Payment = items[i]
		p.Go(func() {
			out[i].ScreenshotSignedURL = s.signScreenshot(ctx, items[i])
		})
	}
	p.Wait()
	return out
}

func (s *PaymentService) signScreenshot(ctx context.Context, item payment.Payment) string {
	raw := strings.TrimSpace(item.ScreenshotURL)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if s.screenshots == nil {
		return ""
	}

	url, err := s.screenshots.SignedURL(ctx, raw, s.signedURLTTL)
	if err != nil {
		s.logger.WarnContext(ctx, "sign screenshot url failed", "payment_id", item.ID, "error", err)
		return ""
	}
	return url
}

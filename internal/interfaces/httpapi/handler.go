package httpapi

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tournament-hub/internal/domain/user"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
	"github.com/riskibarqy/tournament-hub/internal/usecase"
)

const (
	maxUploadBytes  = 5 << 20
	uploadFormField = "file"
)

type Handler struct {
	tournamentService    *usecase.TournamentService
	teamService          *usecase.TeamService
	groupService         *usecase.GroupService
	standingService      *usecase.StandingService
	qualificationService *usecase.QualificationService
	matchService         *usecase.MatchService
	paymentService       *usecase.PaymentService
	profileService       *usecase.ProfileService
	joinRequestService   *usecase.JoinRequestService
	logger               *logging.Logger
	validator            *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	teamService *usecase.TeamService,
	groupService *usecase.GroupService,
	standingService *usecase.StandingService,
	qualificationService *usecase.QualificationService,
	matchService *usecase.MatchService,
	paymentService *usecase.PaymentService,
	profileService *usecase.ProfileService,
	joinRequestService *usecase.JoinRequestService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService:    tournamentService,
		teamService:          teamService,
		groupService:         groupService,
		standingService:      standingService,
		qualificationService: qualificationService,
		matchService:         matchService,
		paymentService:       paymentService,
		profileService:       profileService,
		joinRequestService:   joinRequestService,
		logger:               logger.Named("handler"),
		validator:            validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

type upload struct {
	file        multipart.File
	filename    string
	contentType string
}

func (u upload) Close() error {
	return u.file.Close()
}

func (u upload) Reader() io.Reader {
	return u.file
}

// readUpload returns the multipart file posted under the "file" field.
func readUpload(w http.ResponseWriter, r *http.Request) (upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+(1<<10))
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return upload{}, fmt.Errorf("%w: invalid multipart payload: %v", usecase.ErrInvalidInput, err)
	}
	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		return upload{}, fmt.Errorf("%w: %s is required: %v", usecase.ErrInvalidInput, uploadFormField, err)
	}
	return upload{
		file:        file,
		filename:    header.Filename,
		contentType: header.Header.Get("Content-Type"),
	}, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

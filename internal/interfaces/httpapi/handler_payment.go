package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/tournament-hub/internal/domain/payment"
	"github.com/riskibarqy/tournament-hub/internal/usecase"
)

func (h *Handler) UploadPaymentScreenshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadPaymentScreenshot")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	file, err := readUpload(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	defer file.Close()

	key, err := h.paymentService.UploadScreenshot(ctx, principal.UserID, file.filename, file.contentType, file.Reader())
	if err != nil {
		h.logger.WarnContext(ctx, "upload payment screenshot failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, uploadDTO{Key: key})
}

func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPayment")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req submitPaymentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.paymentService.Submit(ctx, usecase.SubmitPaymentInput{
		UserID:        principal.UserID,
		TeamID:        req.TeamID,
		TournamentID:  req.TournamentID,
		Amount:        req.Amount,
		ScreenshotKey: req.ScreenshotKey,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit payment failed", "team_id", req.TeamID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, paymentToDTO(item))
}

func (h *Handler) ListMyPayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPayments")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.paymentService.ListMine(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, paymentViewsToDTO(items))
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPayments")
	defer span.End()

	query := r.URL.Query()
	items, err := h.paymentService.List(ctx, payment.ListFilter{
		TournamentID: strings.TrimSpace(query.Get("tournament_id")),
		UserID:       strings.TrimSpace(query.Get("user_id")),
		Status:       payment.Status(strings.TrimSpace(query.Get("status"))),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, paymentViewsToDTO(items))
}

func (h *Handler) ReviewPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReviewPayment")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req reviewPaymentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	paymentID := r.PathValue("paymentID")
	item, err := h.paymentService.Review(ctx, usecase.ReviewPaymentInput{
		PaymentID:  paymentID,
		ReviewerID: principal.UserID,
		Status:     payment.Status(req.Status),
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "review payment failed", "payment_id", paymentID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, paymentToDTO(item))
}

func paymentViewsToDTO(items []usecase.PaymentView) []paymentDTO {
	out := make([]paymentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, paymentViewToDTO(item))
	}
	return out
}

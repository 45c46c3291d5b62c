package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-hub/internal/usecase"
)

// GetMyProfile creates the profile on first call, like the sign-up trigger did.
func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profileService.Ensure(ctx, principal.UserID, principal.Username)
	if err != nil {
		h.logger.WarnContext(ctx, "ensure profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	roles, err := h.profileService.Roles(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item, roles))
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req updateProfileRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profileService.Update(ctx, usecase.UpdateProfileInput{
		UserID:   principal.UserID,
		Username: req.Username,
		RiotID:   req.RiotID,
		Rank:     req.Rank,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item, nil))
}

func (h *Handler) UploadMyAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadMyAvatar")
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

	item, err := h.profileService.UploadAvatar(ctx, principal.UserID, file.filename, file.contentType, file.Reader())
	if err != nil {
		h.logger.WarnContext(ctx, "upload avatar failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item, nil))
}

func (h *Handler) SetUserBanned(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetUserBanned")
	defer span.End()

	var req setBannedRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	userID := r.PathValue("userID")
	if err := h.profileService.SetBanned(ctx, userID, req.Banned); err != nil {
		h.logger.WarnContext(ctx, "set user banned failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"user_id": userID, "is_banned": req.Banned})
}

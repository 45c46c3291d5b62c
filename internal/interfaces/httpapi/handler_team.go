package httpapi

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/riskibarqy/tournament-hub/internal/domain/profile"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	"github.com/riskibarqy/tournament-hub/internal/usecase"
)

func (h *Handler) ListTeamsByTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByTournament")
	defer span.End()

	items, err := h.teamService.ListByTournament(ctx, r.PathValue("tournamentID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	item, err := h.teamService.Get(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMembers")
	defer span.End()

	members, err := h.teamService.ListMembers(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]teamMemberDTO, 0, len(members))
	for _, m := range members {
		out = append(out, teamMemberToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req createTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	riotID := strings.TrimSpace(req.RiotID)
	if riotID == "" {
		riotID = h.profileRiotID(ctx, principal.UserID)
	}

	item, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		TournamentID:  req.TournamentID,
		Name:          req.Name,
		LogoURL:       req.LogoURL,
		CaptainID:     principal.UserID,
		CaptainRiotID: riotID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "tournament_id", req.TournamentID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	if err := h.teamService.Leave(ctx, teamID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "leave team failed", "team_id", teamID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "left"})
}

func (h *Handler) SetTeamStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetTeamStatus")
	defer span.End()

	var req setTeamStatusRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	item, err := h.teamService.SetStatus(ctx, teamID, team.Status(req.Status))
	if err != nil {
		h.logger.WarnContext(ctx, "set team status failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) CreateJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateJoinRequest")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req createJoinRequestRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	riotID := strings.TrimSpace(req.RiotID)
	if riotID == "" {
		riotID = h.profileRiotID(ctx, principal.UserID)
	}

	teamID := r.PathValue("teamID")
	item, err := h.joinRequestService.Create(ctx, usecase.CreateJoinRequestInput{
		TeamID:  teamID,
		UserID:  principal.UserID,
		RiotID:  riotID,
		Message: req.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create join request failed", "team_id", teamID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, joinRequestToDTO(item))
}

func (h *Handler) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJoinRequests")
	defer span.End()

	items, err := h.joinRequestService.ListByTeam(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]joinRequestDTO, 0, len(items))
	for _, item := range items {
		out = append(out, joinRequestToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) RespondJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondJoinRequest")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req respondJoinRequestRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	asAdmin, err := h.isAdmin(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	requestID := r.PathValue("requestID")
	item, err := h.joinRequestService.Respond(ctx, usecase.RespondJoinRequestInput{
		RequestID:  requestID,
		ReviewerID: principal.UserID,
		Approve:    req.Approve,
		AsAdmin:    asAdmin,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "respond join request failed", "request_id", requestID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, joinRequestToDTO(item))
}

func (h *Handler) isAdmin(ctx context.Context, userID string) (bool, error) {
	if isAdminContext(ctx) {
		return true, nil
	}
	roles, err := h.profileService.Roles(ctx, userID)
	if err != nil {
		return false, err
	}
	return slices.Contains(roles, profile.RoleAdmin), nil
}

// profileRiotID falls back to the riot id saved on the caller's profile.
func (h *Handler) profileRiotID(ctx context.Context, userID string) string {
	item, err := h.profileService.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, usecase.ErrNotFound) {
			h.logger.WarnContext(ctx, "load profile riot id failed", "user_id", userID, "error", err)
		}
		return ""
	}
	return item.RiotID
}

package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/tournament-hub/internal/domain/match"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	"github.com/riskibarqy/tournament-hub/internal/usecase"
)

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	items, err := h.tournamentService.List(ctx, tournament.ListFilter{
		Status: tournament.Status(strings.TrimSpace(r.URL.Query().Get("status"))),
		Limit:  limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]tournamentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, tournamentToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	item, err := h.tournamentService.Get(ctx, r.PathValue("tournamentID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req createTournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Create(ctx, usecase.CreateTournamentInput{
		Name:                  req.Name,
		Description:           req.Description,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		MaxTeams:              req.MaxTeams,
		TeamSize:              req.TeamSize,
		EntryFee:              req.EntryFee,
		PlatformFeePercentage: req.PlatformFeePercentage,
		Type:                  tournament.Type(req.TournamentType),
		MatchType:             tournament.MatchType(req.MatchType),
		NumGroups:             req.NumGroups,
		TeamsPerGroupQualify:  req.TeamsPerGroupQualify,
		PrizePool:             req.PrizePool,
		PrizeDistribution:     tournament.PrizeDistribution(req.PrizeDistribution),
		BannerURL:             req.BannerURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(item))
}

func (h *Handler) UpdateTournamentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTournamentStatus")
	defer span.End()

	var req updateTournamentStatusRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := r.PathValue("tournamentID")
	item, err := h.tournamentService.UpdateStatus(ctx, tournamentID, tournament.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		h.logger.WarnContext(ctx, "update tournament status failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) CreateGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGroups")
	defer span.End()

	var req createGroupsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := r.PathValue("tournamentID")
	groups, err := h.groupService.CreateGroups(ctx, tournamentID, req.NumGroups)
	if err != nil {
		h.logger.WarnContext(ctx, "create groups failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]groupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) ListGroupTables(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGroupTables")
	defer span.End()

	tables, err := h.groupService.ListTables(ctx, r.PathValue("tournamentID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]groupTableDTO, 0, len(tables))
	for _, table := range tables {
		out = append(out, groupTableDTO{
			Group:     groupToDTO(table.Group),
			Standings: rankedStandingsToDTO(table.Standings),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignTeam")
	defer span.End()

	var req assignTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	groupID := r.PathValue("groupID")
	item, err := h.groupService.AssignTeam(ctx, usecase.AssignTeamInput{
		TeamID:    req.TeamID,
		GroupID:   groupID,
		GroupName: req.GroupName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assign team failed", "group_id", groupID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, standingToDTO(item))
}

func (h *Handler) ListGroupStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGroupStandings")
	defer span.End()

	rows, err := h.standingService.ListByGroup(ctx, r.PathValue("groupID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rankedStandingsToDTO(rows))
}

func (h *Handler) UpdateStanding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateStanding")
	defer span.End()

	var req updateStandingRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	standingID := r.PathValue("standingID")
	item, err := h.standingService.UpdateStanding(ctx, usecase.UpdateStandingInput{
		StandingID: standingID,
		Patch: standing.Patch{
			Wins:        req.Wins,
			Losses:      req.Losses,
			Draws:       req.Draws,
			Points:      req.Points,
			GamesPlayed: req.GamesPlayed,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update standing failed", "standing_id", standingID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, standingToDTO(item))
}

func (h *Handler) RecomputeGroup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeGroup")
	defer span.End()

	groupID := r.PathValue("groupID")
	result, err := h.qualificationService.RecomputeGroup(ctx, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute group failed", "group_id", groupID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, recomputeResultToDTO(result))
}

func (h *Handler) RecomputeTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeTournament")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	result, err := h.qualificationService.RecomputeTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	groups := make([]recomputeResultDTO, 0, len(result.Groups))
	for _, g := range result.Groups {
		groups = append(groups, recomputeResultToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, tournamentRecomputeDTO{
		TournamentID: result.TournamentID,
		GroupCount:   result.GroupCount,
		FailedCount:  result.FailedCount,
		Groups:       groups,
	})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	items, err := h.matchService.List(ctx, match.ListFilter{
		TournamentID: r.PathValue("tournamentID"),
		Stage:        match.Stage(strings.TrimSpace(query.Get("stage"))),
		GroupID:      strings.TrimSpace(query.Get("group_id")),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBracket")
	defer span.End()

	rounds, err := h.matchService.Bracket(ctx, r.PathValue("tournamentID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, bracketToDTO(rounds))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		TournamentID:    req.TournamentID,
		GroupID:         req.GroupID,
		Team1ID:         req.Team1ID,
		Team2ID:         req.Team2ID,
		MatchType:       tournament.MatchType(req.MatchType),
		Stage:           match.Stage(req.Stage),
		BracketRound:    req.BracketRound,
		BracketPosition: req.BracketPosition,
		ScheduledAt:     req.ScheduledAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchResult")
	defer span.End()

	var req recordMatchResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	item, err := h.matchService.RecordResult(ctx, usecase.RecordResultInput{
		MatchID: matchID,
		Result: match.Result{
			Team1Score: req.Team1Score,
			Team2Score: req.Team2Score,
			WinnerID:   strings.TrimSpace(req.WinnerID),
			AdminNotes: req.AdminNotes,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

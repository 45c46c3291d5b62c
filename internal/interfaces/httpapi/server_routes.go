package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}
	if !cfg.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/teams", handler.ListTeamsByTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/groups", handler.ListGroupTables)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/bracket", handler.GetBracket)
	mux.HandleFunc("GET /v1/groups/{groupID}/standings", handler.ListGroupStandings)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/members", handler.ListTeamMembers)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, gate AccountGate) {
	auth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, gate, h)
	}

	mux.Handle("GET /v1/me/profile", auth(handler.GetMyProfile))
	mux.Handle("PATCH /v1/me/profile", auth(handler.UpdateMyProfile))
	mux.Handle("POST /v1/me/avatar", auth(handler.UploadMyAvatar))
	mux.Handle("GET /v1/me/payments", auth(handler.ListMyPayments))

	mux.Handle("POST /v1/teams", auth(handler.CreateTeam))
	mux.Handle("DELETE /v1/teams/{teamID}/members/me", auth(handler.LeaveTeam))
	mux.Handle("POST /v1/teams/{teamID}/join-requests", auth(handler.CreateJoinRequest))
	mux.Handle("GET /v1/teams/{teamID}/join-requests", auth(handler.ListJoinRequests))
	mux.Handle("POST /v1/join-requests/{requestID}/respond", auth(handler.RespondJoinRequest))

	mux.Handle("POST /v1/payments/screenshots", auth(handler.UploadPaymentScreenshot))
	mux.Handle("POST /v1/payments", auth(handler.SubmitPayment))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, gate AccountGate) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, gate, RequireAdmin(gate, h))
	}

	mux.Handle("POST /v1/admin/tournaments", admin(handler.CreateTournament))
	mux.Handle("PATCH /v1/admin/tournaments/{tournamentID}/status", admin(handler.UpdateTournamentStatus))
	mux.Handle("POST /v1/admin/tournaments/{tournamentID}/groups", admin(handler.CreateGroups))
	mux.Handle("POST /v1/admin/tournaments/{tournamentID}/qualification/recompute", admin(handler.RecomputeTournament))
	mux.Handle("POST /v1/admin/groups/{groupID}/teams", admin(handler.AssignTeam))
	mux.Handle("POST /v1/admin/groups/{groupID}/qualification/recompute", admin(handler.RecomputeGroup))
	mux.Handle("PATCH /v1/admin/standings/{standingID}", admin(handler.UpdateStanding))
	mux.Handle("PATCH /v1/admin/teams/{teamID}/status", admin(handler.SetTeamStatus))
	mux.Handle("POST /v1/admin/matches", admin(handler.CreateMatch))
	mux.Handle("PUT /v1/admin/matches/{matchID}/result", admin(handler.RecordMatchResult))
	mux.Handle("GET /v1/admin/payments", admin(handler.ListPayments))
	mux.Handle("POST /v1/admin/payments/{paymentID}/review", admin(handler.ReviewPayment))
	mux.Handle("PUT /v1/admin/users/{userID}/ban", admin(handler.SetUserBanned))
}

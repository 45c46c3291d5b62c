package httpapi

import (
	"time"

	"github.com/riskibarqy/tournament-hub/internal/domain/bracket"
	"github.com/riskibarqy/tournament-hub/internal/domain/group"
	"github.com/riskibarqy/tournament-hub/internal/domain/joinrequest"
	"github.com/riskibarqy/tournament-hub/internal/domain/match"
	"github.com/riskibarqy/tournament-hub/internal/domain/payment"
	"github.com/riskibarqy/tournament-hub/internal/domain/profile"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/domain/team"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	"github.com/riskibarqy/tournament-hub/internal/usecase"
)

type createTournamentRequest struct {
	Name                  string         `json:"name" validate:"required,max=120"`
	Description           string         `json:"description" validate:"omitempty,max=2000"`
	StartDate             time.Time      `json:"start_date" validate:"required"`
	EndDate               *time.Time     `json:"end_date"`
	MaxTeams              int            `json:"max_teams" validate:"gte=2"`
	TeamSize              int            `json:"team_size" validate:"gte=1"`
	EntryFee              float64        `json:"entry_fee" validate:"gte=0"`
	PlatformFeePercentage float64        `json:"platform_fee_percentage" validate:"gte=0,lte=100"`
	TournamentType        string         `json:"tournament_type" validate:"required,oneof=group_knockout single_elimination"`
	MatchType             string         `json:"match_type" validate:"required,oneof=bo1 bo3 bo5"`
	NumGroups             *int           `json:"num_groups" validate:"omitempty,gte=1,lte=26"`
	TeamsPerGroupQualify  *int           `json:"teams_per_group_qualify" validate:"omitempty,gte=1"`
	PrizePool             float64        `json:"prize_pool" validate:"gte=0"`
	PrizeDistribution     map[string]int `json:"prize_distribution"`
	BannerURL             string         `json:"banner_url" validate:"omitempty,url"`
}

type updateTournamentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type createGroupsRequest struct {
	NumGroups int `json:"num_groups" validate:"gte=1,lte=26"`
}

type assignTeamRequest struct {
	TeamID    string `json:"team_id" validate:"required"`
	GroupName string `json:"group_name" validate:"omitempty,max=60"`
}

type updateStandingRequest struct {
	Wins        *int `json:"wins" validate:"omitempty,gte=0"`
	Losses      *int `json:"losses" validate:"omitempty,gte=0"`
	Draws       *int `json:"draws" validate:"omitempty,gte=0"`
	Points      *int `json:"points" validate:"omitempty,gte=0"`
	GamesPlayed *int `json:"games_played" validate:"omitempty,gte=0"`
}

type createTeamRequest struct {
	TournamentID string `json:"tournament_id" validate:"required"`
	Name         string `json:"name" validate:"required,max=60"`
	LogoURL      string `json:"logo_url" validate:"omitempty,url"`
	RiotID       string `json:"riot_id" validate:"omitempty,max=64"`
}

type setTeamStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=incomplete pending_payment registered qualified eliminated"`
}

type createJoinRequestRequest struct {
	RiotID  string `json:"riot_id" validate:"omitempty,max=64"`
	Message string `json:"message" validate:"omitempty,max=500"`
}

type respondJoinRequestRequest struct {
	Approve bool `json:"approve"`
}

type createMatchRequest struct {
	TournamentID    string     `json:"tournament_id" validate:"required"`
	GroupID         string     `json:"group_id"`
	Team1ID         string     `json:"team1_id"`
	Team2ID         string     `json:"team2_id"`
	MatchType       string     `json:"match_type" validate:"required,oneof=bo1 bo3 bo5"`
	Stage           string     `json:"stage" validate:"required,oneof=group knockout"`
	BracketRound    *int       `json:"bracket_round" validate:"omitempty,gte=1"`
	BracketPosition *int       `json:"bracket_position" validate:"omitempty,gte=1"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
}

type recordMatchResultRequest struct {
	Team1Score int    `json:"team1_score" validate:"gte=0"`
	Team2Score int    `json:"team2_score" validate:"gte=0"`
	WinnerID   string `json:"winner_id"`
	AdminNotes string `json:"admin_notes" validate:"omitempty,max=2000"`
}

type submitPaymentRequest struct {
	TeamID        string  `json:"team_id" validate:"required"`
	TournamentID  string  `json:"tournament_id"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	ScreenshotKey string  `json:"screenshot_key" validate:"required"`
	PaymentMethod string  `json:"payment_method" validate:"required,max=60"`
}

type reviewPaymentRequest struct {
	Status     string `json:"status" validate:"required,oneof=approved rejected"`
	AdminNotes string `json:"admin_notes" validate:"omitempty,max=2000"`
}

type updateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=30"`
	RiotID   *string `json:"riot_id" validate:"omitempty,max=64"`
	Rank     *string `json:"rank" validate:"omitempty,max=30"`
}

type setBannedRequest struct {
	Banned bool `json:"banned"`
}

type payoutDTO struct {
	Place   string  `json:"place"`
	Percent int     `json:"percent"`
	Amount  float64 `json:"amount"`
}

type tournamentDTO struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	Description           string         `json:"description,omitempty"`
	StartDate             time.Time      `json:"start_date"`
	EndDate               *time.Time     `json:"end_date,omitempty"`
	MaxTeams              int            `json:"max_teams"`
	TeamSize              int            `json:"team_size"`
	EntryFee              float64        `json:"entry_fee"`
	PlatformFeePercentage float64        `json:"platform_fee_percentage"`
	TournamentType        string         `json:"tournament_type"`
	MatchType             string         `json:"match_type"`
	Status                string         `json:"status"`
	NumGroups             *int           `json:"num_groups,omitempty"`
	TeamsPerGroupQualify  *int           `json:"teams_per_group_qualify,omitempty"`
	PrizePool             float64        `json:"prize_pool"`
	PrizeDistribution     map[string]int `json:"prize_distribution"`
	Payouts               []payoutDTO    `json:"payouts"`
	IsLocked              bool           `json:"is_locked"`
	BannerURL             string         `json:"banner_url,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
}

type groupDTO struct {
	ID           string    `json:"id"`
	TournamentID string    `json:"tournament_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

type standingDTO struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	TeamID      string    `json:"team_id"`
	TeamName    string    `json:"team_name,omitempty"`
	Rank        int       `json:"rank,omitempty"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Draws       int       `json:"draws"`
	Points      int       `json:"points"`
	GamesPlayed int       `json:"games_played"`
	IsQualified bool      `json:"is_qualified"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type groupTableDTO struct {
	Group     groupDTO      `json:"group"`
	Standings []standingDTO `json:"standings"`
}

type teamDTO struct {
	ID           string    `json:"id"`
	TournamentID string    `json:"tournament_id"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logo_url,omitempty"`
	CaptainID    string    `json:"captain_id"`
	Status       string    `json:"status"`
	GroupName    string    `json:"group_name,omitempty"`
	IsLocked     bool      `json:"is_locked"`
	CreatedAt    time.Time `json:"created_at"`
}

type teamMemberDTO struct {
	ID       string    `json:"id"`
	TeamID   string    `json:"team_id"`
	UserID   string    `json:"user_id"`
	RiotID   string    `json:"riot_id,omitempty"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type joinRequestDTO struct {
	ID         string     `json:"id"`
	TeamID     string     `json:"team_id"`
	UserID     string     `json:"user_id"`
	RiotID     string     `json:"riot_id,omitempty"`
	Message    string     `json:"message,omitempty"`
	Status     string     `json:"status"`
	ReviewedBy string     `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type matchDTO struct {
	ID              string     `json:"id"`
	TournamentID    string     `json:"tournament_id"`
	GroupID         string     `json:"group_id,omitempty"`
	Team1ID         string     `json:"team1_id,omitempty"`
	Team2ID         string     `json:"team2_id,omitempty"`
	Team1Score      int        `json:"team1_score"`
	Team2Score      int        `json:"team2_score"`
	WinnerID        string     `json:"winner_id,omitempty"`
	MatchType       string     `json:"match_type"`
	Stage           string     `json:"stage"`
	BracketRound    *int       `json:"bracket_round,omitempty"`
	BracketPosition *int       `json:"bracket_position,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	PlayedAt        *time.Time `json:"played_at,omitempty"`
	AdminNotes      string     `json:"admin_notes,omitempty"`
	IsCompleted     bool       `json:"is_completed"`
}

type bracketSlotDTO struct {
	MatchID     string `json:"match_id"`
	Position    int    `json:"position"`
	Team1ID     string `json:"team1_id,omitempty"`
	Team1Name   string `json:"team1_name"`
	Team1Score  int    `json:"team1_score"`
	Team2ID     string `json:"team2_id,omitempty"`
	Team2Name   string `json:"team2_name"`
	Team2Score  int    `json:"team2_score"`
	WinnerID    string `json:"winner_id,omitempty"`
	IsCompleted bool   `json:"is_completed"`
}

type bracketRoundDTO struct {
	Round      int              `json:"round"`
	Name       string           `json:"name"`
	SlotHeight int              `json:"slot_height"`
	Matches    []bracketSlotDTO `json:"matches"`
}

type paymentDTO struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	TeamID        string     `json:"team_id"`
	TournamentID  string     `json:"tournament_id"`
	Amount        float64    `json:"amount"`
	ScreenshotURL string     `json:"screenshot_url,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	AdminNotes    string     `json:"admin_notes,omitempty"`
	ReviewedBy    string     `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type profileDTO struct {
	UserID    string   `json:"user_id"`
	Username  string   `json:"username"`
	RiotID    string   `json:"riot_id,omitempty"`
	Rank      string   `json:"rank,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	IsBanned  bool     `json:"is_banned"`
	Roles     []string `json:"roles,omitempty"`
}

type uploadDTO struct {
	Key string `json:"key"`
}

type recomputeResultDTO struct {
	GroupID          string   `json:"group_id"`
	TournamentID     string   `json:"tournament_id"`
	Advance          int      `json:"advance"`
	StandingCount    int      `json:"standing_count"`
	QualifiedTeamIDs []string `json:"qualified_team_ids"`
	PromotedTeamIDs  []string `json:"promoted_team_ids"`
	RevertedTeamIDs  []string `json:"reverted_team_ids"`
}

type tournamentRecomputeDTO struct {
	TournamentID string               `json:"tournament_id"`
	GroupCount   int                  `json:"group_count"`
	FailedCount  int                  `json:"failed_count"`
	Groups       []recomputeResultDTO `json:"groups"`
}

func tournamentToDTO(v tournament.Tournament) tournamentDTO {
	distribution := make(map[string]int, len(v.PrizeDistribution))
	for place, percent := range v.PrizeDistribution {
		distribution[place] = percent
	}
	payouts := make([]payoutDTO, 0, len(distribution))
	for _, p := range v.PrizeDistribution.Payouts(v.PrizePool) {
		payouts = append(payouts, payoutDTO{Place: p.Place, Percent: p.Percent, Amount: p.Amount})
	}

	return tournamentDTO{
		ID:                    v.ID,
		Name:                  v.Name,
		Description:           v.Description,
		StartDate:             v.StartDate,
		EndDate:               v.EndDate,
		MaxTeams:              v.MaxTeams,
		TeamSize:              v.TeamSize,
		EntryFee:              v.EntryFee,
		PlatformFeePercentage: v.PlatformFeePercentage,
		TournamentType:        string(v.Type),
		MatchType:             string(v.MatchType),
		Status:                string(v.Status),
		NumGroups:             v.NumGroups,
		TeamsPerGroupQualify:  v.TeamsPerGroupQualify,
		PrizePool:             v.PrizePool,
		PrizeDistribution:     distribution,
		Payouts:               payouts,
		IsLocked:              v.IsLocked,
		BannerURL:             v.BannerURL,
		CreatedAt:             v.CreatedAt,
	}
}

func groupToDTO(v group.Group) groupDTO {
	return groupDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		Name:         v.Name,
		CreatedAt:    v.CreatedAt,
	}
}

func standingToDTO(v standing.Standing) standingDTO {
	return standingDTO{
		ID:          v.ID,
		GroupID:     v.GroupID,
		TeamID:      v.TeamID,
		Wins:        v.Wins,
		Losses:      v.Losses,
		Draws:       v.Draws,
		Points:      v.Points,
		GamesPlayed: v.GamesPlayed,
		IsQualified: v.IsQualified,
		UpdatedAt:   v.UpdatedAt,
	}
}

// rankedStandingsToDTO expects rows already in table order.
func rankedStandingsToDTO(rows []standing.Row) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for i, row := range rows {
		item := standingToDTO(row.Standing)
		item.TeamName = row.TeamName
		item.Rank = i + 1
		out = append(out, item)
	}
	return out
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		Name:         v.Name,
		LogoURL:      v.LogoURL,
		CaptainID:    v.CaptainID,
		Status:       string(v.Status),
		GroupName:    v.GroupName,
		IsLocked:     v.IsLocked,
		CreatedAt:    v.CreatedAt,
	}
}

func teamMemberToDTO(v team.Member) teamMemberDTO {
	return teamMemberDTO{
		ID:       v.ID,
		TeamID:   v.TeamID,
		UserID:   v.UserID,
		RiotID:   v.RiotID,
		Role:     string(v.Role),
		JoinedAt: v.JoinedAt,
	}
}

func joinRequestToDTO(v joinrequest.Request) joinRequestDTO {
	return joinRequestDTO{
		ID:         v.ID,
		TeamID:     v.TeamID,
		UserID:     v.UserID,
		RiotID:     v.RiotID,
		Message:    v.Message,
		Status:     string(v.Status),
		ReviewedBy: v.ReviewedBy,
		ReviewedAt: v.ReviewedAt,
		CreatedAt:  v.CreatedAt,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:              v.ID,
		TournamentID:    v.TournamentID,
		GroupID:         v.GroupID,
		Team1ID:         v.Team1ID,
		Team2ID:         v.Team2ID,
		Team1Score:      v.Team1Score,
		Team2Score:      v.Team2Score,
		WinnerID:        v.WinnerID,
		MatchType:       string(v.MatchType),
		Stage:           string(v.Stage),
		BracketRound:    v.BracketRound,
		BracketPosition: v.BracketPosition,
		ScheduledAt:     v.ScheduledAt,
		PlayedAt:        v.PlayedAt,
		AdminNotes:      v.AdminNotes,
		IsCompleted:     v.IsCompleted,
	}
}

func bracketToDTO(rounds []bracket.Round) []bracketRoundDTO {
	out := make([]bracketRoundDTO, 0, len(rounds))
	for _, round := range rounds {
		slots := make([]bracketSlotDTO, 0, len(round.Slots))
		for _, s := range round.Slots {
			slots = append(slots, bracketSlotDTO{
				MatchID:     s.MatchID,
				Position:    s.Position,
				Team1ID:     s.Team1ID,
				Team1Name:   s.Team1Name,
				Team1Score:  s.Team1Score,
				Team2ID:     s.Team2ID,
				Team2Name:   s.Team2Name,
				Team2Score:  s.Team2Score,
				WinnerID:    s.WinnerID,
				IsCompleted: s.IsCompleted,
			})
		}
		out = append(out, bracketRoundDTO{
			Round:      round.Number,
			Name:       round.Name,
			SlotHeight: round.SlotHeight,
			Matches:    slots,
		})
	}
	return out
}

// paymentViewToDTO exposes the signed screenshot link, never the storage key.
func paymentViewToDTO(v usecase.PaymentView) paymentDTO {
	out := paymentToDTO(v.Payment)
	out.ScreenshotURL = v.ScreenshotSignedURL
	return out
}

func paymentToDTO(v payment.Payment) paymentDTO {
	return paymentDTO{
		ID:            v.ID,
		UserID:        v.UserID,
		TeamID:        v.TeamID,
		TournamentID:  v.TournamentID,
		Amount:        v.Amount,
		PaymentMethod: v.PaymentMethod,
		Status:        string(v.Status),
		AdminNotes:    v.AdminNotes,
		ReviewedBy:    v.ReviewedBy,
		ReviewedAt:    v.ReviewedAt,
		CreatedAt:     v.CreatedAt,
	}
}

func profileToDTO(v profile.Profile, roles []profile.Role) profileDTO {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return profileDTO{
		UserID:    v.UserID,
		Username:  v.Username,
		RiotID:    v.RiotID,
		Rank:      v.Rank,
		AvatarURL: v.AvatarURL,
		IsBanned:  v.IsBanned,
		Roles:     names,
	}
}

func recomputeResultToDTO(v usecase.RecomputeResult) recomputeResultDTO {
	return recomputeResultDTO{
		GroupID:          v.GroupID,
		TournamentID:     v.TournamentID,
		Advance:          v.Advance,
		StandingCount:    v.StandingCount,
		QualifiedTeamIDs: nonNil(v.QualifiedTeamIDs),
		PromotedTeamIDs:  nonNil(v.PromotedTeamIDs),
		RevertedTeamIDs:  nonNil(v.RevertedTeamIDs),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

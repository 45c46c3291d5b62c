package postgres

import (
	"database/sql"
	"time"
)

type tournamentTableModel struct {
	ID                    string         `db:"id"`
	Name                  string         `db:"name"`
	Description           sql.NullString `db:"description"`
	StartDate             time.Time      `db:"start_date"`
	EndDate               sql.NullTime   `db:"end_date"`
	MaxTeams              int            `db:"max_teams"`
	TeamSize              int            `db:"team_size"`
	EntryFee              float64        `db:"entry_fee"`
	PlatformFeePercentage float64        `db:"platform_fee_percentage"`
	Type                  string         `db:"tournament_type"`
	MatchType             string         `db:"match_type"`
	Status                string         `db:"status"`
	NumGroups             sql.NullInt64  `db:"num_groups"`
	TeamsPerGroupQualify  sql.NullInt64  `db:"teams_per_group_qualify"`
	PrizePool             float64        `db:"prize_pool"`
	PrizeDistribution     []byte         `db:"prize_distribution"`
	IsLocked              bool           `db:"is_locked"`
	BannerURL             sql.NullString `db:"banner_url"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

type tournamentInsertModel struct {
	ID                    string         `db:"id"`
	Name                  string         `db:"name"`
	Description           sql.NullString `db:"description"`
	StartDate             time.Time      `db:"start_date"`
	EndDate               sql.NullTime   `db:"end_date"`
	MaxTeams              int            `db:"max_teams"`
	TeamSize              int            `db:"team_size"`
	EntryFee              float64        `db:"entry_fee"`
	PlatformFeePercentage float64        `db:"platform_fee_percentage"`
	Type                  string         `db:"tournament_type"`
	MatchType             string         `db:"match_type"`
	Status                string         `db:"status"`
	NumGroups             sql.NullInt64  `db:"num_groups"`
	TeamsPerGroupQualify  sql.NullInt64  `db:"teams_per_group_qualify"`
	PrizePool             float64        `db:"prize_pool"`
	PrizeDistribution     string         `db:"prize_distribution"`
	IsLocked              bool           `db:"is_locked"`
	BannerURL             sql.NullString `db:"banner_url"`
}

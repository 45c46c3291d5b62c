package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID           string         `db:"id"`
	TournamentID string         `db:"tournament_id"`
	Name         string         `db:"name"`
	LogoURL      sql.NullString `db:"logo_url"`
	CaptainID    sql.NullString `db:"captain_id"`
	Status       string         `db:"status"`
	GroupName    sql.NullString `db:"group_name"`
	IsLocked     bool           `db:"is_locked"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type teamInsertModel struct {
	ID           string         `db:"id"`
	TournamentID string         `db:"tournament_id"`
	Name         string         `db:"name"`
	LogoURL      sql.NullString `db:"logo_url"`
	CaptainID    sql.NullString `db:"captain_id"`
	Status       string         `db:"status"`
	GroupName    sql.NullString `db:"group_name"`
	IsLocked     bool           `db:"is_locked"`
}

type teamMemberTableModel struct {
	ID       string         `db:"id"`
	TeamID   string         `db:"team_id"`
	UserID   string         `db:"user_id"`
	RiotID   sql.NullString `db:"riot_id"`
	Role     string         `db:"role"`
	JoinedAt time.Time      `db:"joined_at"`
}

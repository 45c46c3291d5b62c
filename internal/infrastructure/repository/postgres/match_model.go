package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID              string         `db:"id"`
	TournamentID    string         `db:"tournament_id"`
	GroupID         sql.NullString `db:"group_id"`
	Team1ID         sql.NullString `db:"team1_id"`
	Team2ID         sql.NullString `db:"team2_id"`
	Team1Score      int            `db:"team1_score"`
	Team2Score      int            `db:"team2_score"`
	WinnerID        sql.NullString `db:"winner_id"`
	MatchType       string         `db:"match_type"`
	Stage           string         `db:"stage"`
	BracketRound    sql.NullInt64  `db:"bracket_round"`
	BracketPosition sql.NullInt64  `db:"bracket_position"`
	ScheduledAt     sql.NullTime   `db:"scheduled_at"`
	PlayedAt        sql.NullTime   `db:"played_at"`
	AdminNotes      sql.NullString `db:"admin_notes"`
	IsCompleted     bool           `db:"is_completed"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	ID              string         `db:"id"`
	TournamentID    string         `db:"tournament_id"`
	GroupID         sql.NullString `db:"group_id"`
	Team1ID         sql.NullString `db:"team1_id"`
	Team2ID         sql.NullString `db:"team2_id"`
	Team1Score      int            `db:"team1_score"`
	Team2Score      int            `db:"team2_score"`
	WinnerID        sql.NullString `db:"winner_id"`
	MatchType       string         `db:"match_type"`
	Stage           string         `db:"stage"`
	BracketRound    sql.NullInt64  `db:"bracket_round"`
	BracketPosition sql.NullInt64  `db:"bracket_position"`
	ScheduledAt     sql.NullTime   `db:"scheduled_at"`
	PlayedAt        sql.NullTime   `db:"played_at"`
	AdminNotes      sql.NullString `db:"admin_notes"`
	IsCompleted     bool           `db:"is_completed"`
}

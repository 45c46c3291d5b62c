package postgres

import (
	"database/sql"
	"time"
)

type standingTableModel struct {
	ID          string    `db:"id"`
	GroupID     string    `db:"group_id"`
	TeamID      string    `db:"team_id"`
	Wins        int       `db:"wins"`
	Losses      int       `db:"losses"`
	Draws       int       `db:"draws"`
	Points      int       `db:"points"`
	GamesPlayed int       `db:"games_played"`
	IsQualified bool      `db:"is_qualified"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// standingRowModel is a standing joined with its team name.
type standingRowModel struct {
	standingTableModel
	TeamName sql.NullString `db:"team_name"`
}

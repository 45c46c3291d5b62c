package postgres

import (
	"database/sql"
	"time"
)

type joinRequestTableModel struct {
	ID         string         `db:"id"`
	TeamID     string         `db:"team_id"`
	UserID     string         `db:"user_id"`
	RiotID     string         `db:"riot_id"`
	Message    sql.NullString `db:"message"`
	Status     string         `db:"status"`
	ReviewedBy sql.NullString `db:"reviewed_by"`
	ReviewedAt sql.NullTime   `db:"reviewed_at"`
	CreatedAt  time.Time      `db:"created_at"`
}

package postgres

import (
	"database/sql"
	"time"
)

type profileTableModel struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Username  string         `db:"username"`
	RiotID    sql.NullString `db:"riot_id"`
	Rank      sql.NullString `db:"rank"`
	AvatarURL sql.NullString `db:"avatar_url"`
	IsBanned  bool           `db:"is_banned"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type userRoleTableModel struct {
	UserID string `db:"user_id"`
	Role   string `db:"role"`
}

package postgres

import (
	"database/sql"
	"time"
)

type paymentTableModel struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	TeamID        string         `db:"team_id"`
	TournamentID  string         `db:"tournament_id"`
	Amount        float64        `db:"amount"`
	ScreenshotURL string         `db:"screenshot_url"`
	PaymentMethod sql.NullString `db:"payment_method"`
	Status        string         `db:"status"`
	AdminNotes    sql.NullString `db:"admin_notes"`
	ReviewedBy    sql.NullString `db:"reviewed_by"`
	ReviewedAt    sql.NullTime   `db:"reviewed_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type paymentInsertModel struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	TeamID        string         `db:"team_id"`
	TournamentID  string         `db:"tournament_id"`
	Amount        float64        `db:"amount"`
	ScreenshotURL string         `db:"screenshot_url"`
	PaymentMethod sql.NullString `db:"payment_method"`
	Status        string         `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

package postgres

import "time"

type groupTableModel struct {
	ID           string    `db:"id"`
	TournamentID string    `db:"tournament_id"`
	Name         string    `db:"name"`
	CreatedAt    time.Time `db:"created_at"`
}

type groupInsertModel struct {
	ID           string `db:"id"`
	TournamentID string `db:"tournament_id"`
	Name         string `db:"name"`
}

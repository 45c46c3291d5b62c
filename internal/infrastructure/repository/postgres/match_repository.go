package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-hub/internal/domain/match"
	"github.com/riskibarqy/tournament-hub/internal/domain/tournament"
	qb "github.com/riskibarqy/tournament-hub/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	insertModel := matchInsertModel{
		ID:              item.ID,
		TournamentID:    item.TournamentID,
		GroupID:         nullableString(item.GroupID),
		Team1ID:         nullableString(item.Team1ID),
		Team2ID:         nullableString(item.Team2ID),
		Team1Score:      item.Team1Score,
		Team2Score:      item.Team2Score,
		WinnerID:        nullableString(item.WinnerID),
		MatchType:       string(item.MatchType),
		Stage:           string(item.Stage),
		BracketRound:    nullableInt(item.BracketRound),
		BracketPosition: nullableInt(item.BracketPosition),
		ScheduledAt:     nullableTime(item.ScheduledAt),
		PlayedAt:        nullableTime(item.PlayedAt),
		AdminNotes:      nullableString(item.AdminNotes),
		IsCompleted:     item.IsCompleted,
	}
	query, args, err := qb.InsertModel("matches", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match=%s: %w", item.ID, err)
	}
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	builder := qb.Select("*").From("matches").
		OrderBy("bracket_round NULLS FIRST", "bracket_position NULLS FIRST", "scheduled_at NULLS LAST", "created_at", "id")
	if filter.TournamentID != "" {
		builder.Where(qb.Eq("tournament_id", filter.TournamentID))
	}
	if filter.Stage != "" {
		builder.Where(qb.Eq("stage", string(filter.Stage)))
	}
	if filter.GroupID != "" {
		builder.Where(qb.Eq("group_id", filter.GroupID))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) SaveResult(ctx context.Context, item match.Match) error {
	query, args, err := qb.Update("matches").
		Set("team1_score", item.Team1Score).
		Set("team2_score", item.Team2Score).
		Set("winner_id", nullableString(item.WinnerID)).
		Set("admin_notes", nullableString(item.AdminNotes)).
		Set("is_completed", item.IsCompleted).
		Set("played_at", nullableTime(item.PlayedAt)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save match result query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save match result=%s: %w", item.ID, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return fmt.Errorf("rows affected save match result: %w", err)
	}
	if !ok {
		return fmt.Errorf("save match result: match=%s not found", item.ID)
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:              row.ID,
		TournamentID:    row.TournamentID,
		GroupID:         row.GroupID.String,
		Team1ID:         row.Team1ID.String,
		Team2ID:         row.Team2ID.String,
		Team1Score:      row.Team1Score,
		Team2Score:      row.Team2Score,
		WinnerID:        row.WinnerID.String,
		MatchType:       tournament.MatchType(row.MatchType),
		Stage:           match.Stage(row.Stage),
		BracketRound:    intFromNull(row.BracketRound),
		BracketPosition: intFromNull(row.BracketPosition),
		ScheduledAt:     timeFromNull(row.ScheduledAt),
		PlayedAt:        timeFromNull(row.PlayedAt),
		AdminNotes:      row.AdminNotes.String,
		IsCompleted:     row.IsCompleted,
		CreatedAt:       row.CreatedAt.UTC(),
		UpdatedAt:       row.UpdatedAt.UTC(),
	}
}

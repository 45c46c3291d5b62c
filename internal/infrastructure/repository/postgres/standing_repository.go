package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	qb "github.com/riskibarqy/tournament-hub/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) Create(ctx context.Context, item standing.Standing) error {
	insertModel := standingTableModel{
		ID:          item.ID,
		GroupID:     item.GroupID,
		TeamID:      item.TeamID,
		Wins:        item.Wins,
		Losses:      item.Losses,
		Draws:       item.Draws,
		Points:      item.Points,
		GamesPlayed: item.GamesPlayed,
		IsQualified: item.IsQualified,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("group_standings", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert standing query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: group=%s team=%s", standing.ErrDuplicate, item.GroupID, item.TeamID)
		}
		return fmt.Errorf("insert standing group=%s team=%s: %w", item.GroupID, item.TeamID, err)
	}
	return nil
}

func (r *StandingRepository) GetByID(ctx context.Context, standingID string) (standing.Standing, bool, error) {
	query, args, err := qb.Select("*").From("group_standings").
		Where(qb.Eq("id", standingID)).
		ToSQL()
	if err != nil {
		return standing.Standing{}, false, fmt.Errorf("build get standing by id query: %w", err)
	}

	var row standingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.Standing{}, false, nil
		}
		return standing.Standing{}, false, fmt.Errorf("get standing by id: %w", err)
	}
	return standingFromRow(row), true, nil
}

// Update writes only the patch fields and returns the stored row.
func (r *StandingRepository) Update(ctx context.Context, standingID string, patch standing.Patch) (standing.Standing, bool, error) {
	builder := qb.Update("group_standings")
	if patch.Wins != nil {
		builder.Set("wins", *patch.Wins)
	}
	if patch.Losses != nil {
		builder.Set("losses", *patch.Losses)
	}
	if patch.Draws != nil {
		builder.Set("draws", *patch.Draws)
	}
	if patch.Points != nil {
		builder.Set("points", *patch.Points)
	}
	if patch.GamesPlayed != nil {
		builder.Set("games_played", *patch.GamesPlayed)
	}
	query, args, err := builder.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", standingID)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return standing.Standing{}, false, fmt.Errorf("build update standing query: %w", err)
	}

	var row standingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.Standing{}, false, nil
		}
		return standing.Standing{}, false, fmt.Errorf("update standing=%s: %w", standingID, err)
	}
	return standingFromRow(row), true, nil
}

// ListByGroup returns the group's standings in storage order with team names joined.
func (r *StandingRepository) ListByGroup(ctx context.Context, groupID string) ([]standing.Row, error) {
	query, args, err := qb.Select("s.*", "t.name AS team_name").
		From("group_standings s LEFT JOIN teams t ON t.id = s.team_id").
		Where(qb.Eq("s.group_id", groupID)).
		OrderBy("s.created_at ASC", "s.id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings by group query: %w", err)
	}

	var rows []standingRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings by group: %w", err)
	}

	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Row{
			Standing: standingFromRow(row.standingTableModel),
			TeamName: row.TeamName.String,
		})
	}
	return out, nil
}

// SetQualified flips is_qualified for every id in one statement.
func (r *StandingRepository) SetQualified(ctx context.Context, standingIDs []string, qualified bool) error {
	if len(standingIDs) == 0 {
		return nil
	}

	query, args, err := qb.Update("group_standings").
		Set("is_qualified", qualified).
		SetExpr("updated_at", "NOW()").
		Where(qb.Any("id", pq.Array(standingIDs))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set qualified query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set qualified=%t on %d standings: %w", qualified, len(standingIDs), err)
	}
	return nil
}

func standingFromRow(row standingTableModel) standing.Standing {
	return standing.Standing{
		ID:          row.ID,
		GroupID:     row.GroupID,
		TeamID:      row.TeamID,
		Wins:        row.Wins,
		Losses:      row.Losses,
		Draws:       row.Draws,
		Points:      row.Points,
		GamesPlayed: row.GamesPlayed,
		IsQualified: row.IsQualified,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}

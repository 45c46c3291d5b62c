package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-hub/internal/domain/group"
	qb "github.com/riskibarqy/tournament-hub/internal/platform/querybuilder"
)

type GroupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// CreateBatch writes every group in a single multi-row insert.
func (r *GroupRepository) CreateBatch(ctx context.Context, items []group.Group) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]groupInsertModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, groupInsertModel{
			ID:           item.ID,
			TournamentID: item.TournamentID,
			Name:         item.Name,
		})
	}
	query, args, err := qb.InsertModels("groups", rows, "")
	if err != nil {
		return fmt.Errorf("build insert groups query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: tournament=%s", group.ErrUnknownTournament, items[0].TournamentID)
		}
		return fmt.Errorf("insert groups: %w", err)
	}
	return nil
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	query, args, err := qb.Select("*").From("groups").
		Where(qb.Eq("id", groupID)).
		ToSQL()
	if err != nil {
		return group.Group{}, false, fmt.Errorf("build get group by id query: %w", err)
	}

	var row groupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return group.Group{}, false, nil
		}
		return group.Group{}, false, fmt.Errorf("get group by id: %w", err)
	}
	return groupFromRow(row), true, nil
}

func (r *GroupRepository) ListByTournament(ctx context.Context, tournamentID string) ([]group.Group, error) {
	query, args, err := qb.Select("*").From("groups").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("name", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list groups by tournament query: %w", err)
	}

	var rows []groupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select groups by tournament: %w", err)
	}

	out := make([]group.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, groupFromRow(row))
	}
	return out, nil
}

func groupFromRow(row groupTableModel) group.Group {
	return group.Group{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		Name:         row.Name,
		CreatedAt:    row.CreatedAt.UTC(),
	}
}

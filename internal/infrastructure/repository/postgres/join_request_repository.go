package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-hub/internal/domain/joinrequest"
	qb "github.com/riskibarqy/tournament-hub/internal/platform/querybuilder"
)

type JoinRequestRepository struct {
	db *sqlx.DB
}

func NewJoinRequestRepository(db *sqlx.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

func (r *JoinRequestRepository) Create(ctx context.Context, item joinrequest.Request) error {
	insertModel := joinRequestTableModel{
		ID:         item.ID,
		TeamID:     item.TeamID,
		UserID:     item.UserID,
		RiotID:     item.RiotID,
		Message:    nullableString(item.Message),
		Status:     string(item.Status),
		ReviewedBy: nullableString(item.ReviewedBy),
		ReviewedAt: nullableTime(item.ReviewedAt),
		CreatedAt:  item.CreatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("team_join_requests", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert join request query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: team=%s user=%s", joinrequest.ErrDuplicate, item.TeamID, item.UserID)
		}
		return fmt.Errorf("insert join request team=%s user=%s: %w", item.TeamID, item.UserID, err)
	}
	return nil
}

func (r *JoinRequestRepository) GetByID(ctx context.Context, requestID string) (joinrequest.Request, bool, error) {
	query, args, err := qb.Select("*").From("team_join_requests").
		Where(qb.Eq("id", requestID)).
		ToSQL()
	if err != nil {
		return joinrequest.Request{}, false, fmt.Errorf("build get join request by id query: %w", err)
	}

	var row joinRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return joinrequest.Request{}, false, nil
		}
		return joinrequest.Request{}, false, fmt.Errorf("get join request by id: %w", err)
	}
	return joinRequestFromRow(row), true, nil
}

func (r *JoinRequestRepository) ListByTeam(ctx context.Context, teamID string) ([]joinrequest.Request, error) {
	query, args, err := qb.Select("*").From("team_join_requests").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list join requests query: %w", err)
	}

	var rows []joinRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select join requests: %w", err)
	}

	out := make([]joinrequest.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, joinRequestFromRow(row))
	}
	return out, nil
}

func (r *JoinRequestRepository) SetStatus(ctx context.Context, requestID string, status joinrequest.Status, reviewedBy string, reviewedAt time.Time) error {
	query, args, err := qb.Update("team_join_requests").
		Set("status", string(status)).
		Set("reviewed_by", nullableString(reviewedBy)).
		Set("reviewed_at", reviewedAt.UTC()).
		Where(qb.Eq("id", requestID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set join request status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set join request status=%s: %w", requestID, err)
	}
	ok, err := rowsAffected(result)
	if err != nil {
		return fmt.Errorf("rows affected set join request status: %w", err)
	}
	if !ok {
		return fmt.Errorf("set join request status: request=%s not found", requestID)
	}
	return nil
}

func joinRequestFromRow(row joinRequestTableModel) joinrequest.Request {
	return joinrequest.Request{
		ID:         row.ID,
		TeamID:     row.TeamID,
		UserID:     row.UserID,
		RiotID:     row.RiotID,
		Message:    row.Message.String,
		Status:     joinrequest.Status(row.Status),
		ReviewedBy: row.ReviewedBy.String,
		ReviewedAt: timeFromNull(row.ReviewedAt),
		CreatedAt:  row.CreatedAt.UTC(),
	}
}

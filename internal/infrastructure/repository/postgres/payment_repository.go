package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-hub/internal/domain/payment"
	qb "github.com/riskibarqy/tournament-hub/internal/platform/querybuilder"
)

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, item payment.Payment) error {
	insertModel := paymentInsertModel{
		ID:            item.ID,
		UserID:        item.UserID,
		TeamID:        item.TeamID,
		TournamentID:  item.TournamentID,
		Amount:        item.Amount,
		ScreenshotURL: item.ScreenshotURL,
		PaymentMethod: nullableString(item.PaymentMethod),
		Status:        string(item.Status),
		CreatedAt:     item.CreatedAt.UTC(),
		UpdatedAt:     item.UpdatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("payments", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert payment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert payment=%s: %w", item.ID, err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID string) (payment.Payment, bool, error) {
	query, args, err := qb.Select("*").From("payments").
		Where(qb.Eq("id", paymentID)).
		ToSQL()
	if err != nil {
		return payment.Payment{}, false, fmt.Errorf("build get payment by id query: %w", err)
	}

	var row paymentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return payment.Payment{}, false, nil
		}
		return payment.Payment{}, false, fmt.Errorf("get payment by id: %w", err)
	}
	return paymentFromRow(row), true, nil
}

func (r *PaymentRepository) List(ctx context.Context, filter payment.ListFilter) ([]payment.Payment, error) {
	builder := qb.Select("*").From("payments").OrderBy("created_at DESC", "id")
	if filter.TournamentID != "" {
		builder.Where(qb.Eq("tournament_id", filter.TournamentID))
	}
	if filter.UserID != "" {
		builder.Where(qb.Eq("user_id", filter.UserID))
	}
	if filter.Status != "" {
		builder.Where(qb.Eq("status", string(filter.Status)))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list payments query: %w", err)
	}

	var rows []paymentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select payments: %w", err)
	}

	out := make([]payment.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, paymentFromRow(row))
	}
	return out, nil
}

func (r *PaymentRepository) SaveReview(ctx context.Context, paymentID string, review payment.Review) (payment.Payment, error) {
	query, args, err := qb.Update("payments").
		Set("status", string(review.Status)).
		Set("admin_notes", nullableString(review.AdminNotes)).
		Set("reviewed_by", nullableString(review.ReviewedBy)).
		Set("reviewed_at", review.ReviewedAt.UTC()).
		Set("updated_at", review.ReviewedAt.UTC()).
		Where(qb.Eq("id", paymentID)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("build save payment review query: %w", err)
	}

	var row paymentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return payment.Payment{}, fmt.Errorf("payment %s not found", paymentID)
		}
		return payment.Payment{}, fmt.Errorf("save payment review=%s: %w", paymentID, err)
	}
	return paymentFromRow(row), nil
}

func paymentFromRow(row paymentTableModel) payment.Payment {
	return payment.Payment{
		ID:            row.ID,
		UserID:        row.UserID,
		TeamID:        row.TeamID,
		TournamentID:  row.TournamentID,
		Amount:        row.Amount,
		ScreenshotURL: row.ScreenshotURL,
		PaymentMethod: row.PaymentMethod.String,
		Status:        payment.Status(row.Status),
		AdminNotes:    row.AdminNotes.String,
		ReviewedBy:    row.ReviewedBy.String,
		ReviewedAt:    timeFromNull(row.ReviewedAt),
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}

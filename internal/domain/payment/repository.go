package payment

import (
	"context"
	"time"
)

type ListFilter struct {
	TournamentID string
	UserID       string
	Status       Status
}

type Review struct {
	Status     Status
	AdminNotes string
	ReviewedBy string
	ReviewedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, item Payment) error
	GetByID(ctx context.Context, paymentID string) (Payment, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Payment, error)
	SaveReview(ctx context.Context, paymentID string, review Review) (Payment, error)
}

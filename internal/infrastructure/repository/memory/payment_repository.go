package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/tournament-hub/internal/domain/payment"
)

type PaymentRepository struct {
	mu    sync.RWMutex
	items map[string]payment.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{items: make(map[string]payment.Payment)}
}

func (r *PaymentRepository) Create(_ context.Context, item payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *PaymentRepository) GetByID(_ context.Context, paymentID string) (payment.Payment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[paymentID]
	return item, ok, nil
}

func (r *PaymentRepository) List(_ context.Context, filter payment.ListFilter) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payment.Payment, 0)
	for _, item := range r.items {
		if filter.TournamentID != "" && item.TournamentID != filter.TournamentID {
			continue
		}
		if filter.UserID != "" && item.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PaymentRepository) SaveReview(_ context.Context, paymentID string, review payment.Review) (payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[paymentID]
	if !ok {
		return payment.Payment{}, fmt.Errorf("payment %s not found", paymentID)
	}
	reviewedAt := review.ReviewedAt
	item.Status = review.Status
	item.AdminNotes = review.AdminNotes
	item.ReviewedBy = review.ReviewedBy
	item.ReviewedAt = &reviewedAt
	item.UpdatedAt = reviewedAt
	r.items[paymentID] = item
	return item, nil
}

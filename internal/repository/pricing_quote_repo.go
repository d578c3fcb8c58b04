package repository

import (
	"context"
	"time"

	"github.com/ca-la/bin-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PricingQuoteRepository interface {
	Create(ctx context.Context, q *model.PricingQuote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PricingQuote, error)
	Update(ctx context.Context, q *model.PricingQuote) error
	// ListStalePending returns pending quotes not touched since before,
	// oldest first.
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]model.PricingQuote, error)
	// UpdatePending writes status, attempts and last_error only while the
	// stored quote is still pending. It reports whether a row was updated.
	UpdatePending(ctx context.Context, q *model.PricingQuote) (bool, error)
}

type pricingQuoteRepo struct{ db *gorm.DB }

func NewPricingQuoteRepository(db *gorm.DB) PricingQuoteRepository {
	return &pricingQuoteRepo{db: db}
}

func (r *pricingQuoteRepo) Create(ctx context.Context, q *model.PricingQuote) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *pricingQuoteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PricingQuote, error) {
	var q model.PricingQuote
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *pricingQuoteRepo) Update(ctx context.Context, q *model.PricingQuote) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *pricingQuoteRepo) ListStalePending(ctx context.Context, before time.Time, limit int) ([]model.PricingQuote, error) {
	var list []model.PricingQuote
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", model.QuoteStatusPending, before).
		Order("updated_at asc").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *pricingQuoteRepo) UpdatePending(ctx context.Context, q *model.PricingQuote) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.PricingQuote{}).
		Where("id = ? AND status = ?", q.ID, model.QuoteStatusPending).
		Updates(map[string]interface{}{
			"status":     q.Status,
			"attempts":   q.Attempts,
			"last_error": q.LastError,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

package repository

import (
	"context"

	"github.com/ca-la/bin-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SelectedOptionRepository interface {
	// ListByDesign returns the design's selected options with their library
	// Option preloaded.
	ListByDesign(ctx context.Context, designID uuid.UUID) ([]model.SelectedOption, error)
}

type selectedOptionRepo struct{ db *gorm.DB }

func NewSelectedOptionRepository(db *gorm.DB) SelectedOptionRepository {
	return &selectedOptionRepo{db: db}
}

func (r *selectedOptionRepo) ListByDesign(ctx context.Context, designID uuid.UUID) ([]model.SelectedOption, error) {
	var list []model.SelectedOption
	err := r.db.WithContext(ctx).
		Where("design_id = ?", designID).
		Order("created_at asc").
		Preload("Option").
		Find(&list).Error
	return list, err
}

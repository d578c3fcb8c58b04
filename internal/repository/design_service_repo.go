package repository

import (
	"context"

	"github.com/ca-la/bin-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DesignServiceRepository interface {
	ListByDesign(ctx context.Context, designID uuid.UUID) ([]model.DesignService, error)
}

type designServiceRepo struct{ db *gorm.DB }

func NewDesignServiceRepository(db *gorm.DB) DesignServiceRepository {
	return &designServiceRepo{db: db}
}

func (r *designServiceRepo) ListByDesign(ctx context.Context, designID uuid.UUID) ([]model.DesignService, error) {
	var list []model.DesignService
	err := r.db.WithContext(ctx).
		Where("design_id = ?", designID).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

package repository

import (
	"context"

	"github.com/ca-la/bin-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DesignRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Design, error)
	ListVariants(ctx context.Context, designID uuid.UUID) ([]model.Variant, error)
	// UpdateOverride stores the override table; nil clears it.
	UpdateOverride(ctx context.Context, id uuid.UUID, table datatypes.JSON) error
}

type designRepo struct{ db *gorm.DB }

func NewDesignRepository(db *gorm.DB) DesignRepository { return &designRepo{db: db} }

func (r *designRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Design, error) {
	var d model.Design
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *designRepo) ListVariants(ctx context.Context, designID uuid.UUID) ([]model.Variant, error) {
	var list []model.Variant
	err := r.db.WithContext(ctx).
		Where("design_id = ?", designID).
		Order("position asc").
		Find(&list).Error
	return list, err
}

func (r *designRepo) UpdateOverride(ctx context.Context, id uuid.UUID, table datatypes.JSON) error {
	var value any
	if table != nil {
		value = table
	}
	res := r.db.WithContext(ctx).
		Model(&model.Design{}).
		Where("id = ?", id).
		Update("override_pricing_table", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

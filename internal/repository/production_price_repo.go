package repository

import (
	"context"

	"github.com/ca-la/bin-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductionPriceRepository interface {
	ListByVendorAndService(ctx context.Context, vendorID uuid.UUID, serviceID string) ([]model.ProductionPrice, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.ProductionPrice, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionPrice, error)
	Create(ctx context.Context, p *model.ProductionPrice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productionPriceRepo struct{ db *gorm.DB }

func NewProductionPriceRepository(db *gorm.DB) ProductionPriceRepository {
	return &productionPriceRepo{db: db}
}

func (r *productionPriceRepo) ListByVendorAndService(ctx context.Context, vendorID uuid.UUID, serviceID string) ([]model.ProductionPrice, error) {
	var list []model.ProductionPrice
	err := r.db.WithContext(ctx).
		Where("vendor_user_id = ? AND service_id = ?", vendorID, serviceID).
		Order("complexity asc, minimum_units asc").
		Find(&list).Error
	return list, err
}

func (r *productionPriceRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]model.ProductionPrice, error) {
	var list []model.ProductionPrice
	err := r.db.WithContext(ctx).
		Where("vendor_user_id = ?", vendorID).
		Order("service_id asc, complexity asc, minimum_units asc").
		Find(&list).Error
	return list, err
}

func (r *productionPriceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionPrice, error) {
	var p model.ProductionPrice
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productionPriceRepo) Create(ctx context.Context, p *model.ProductionPrice) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productionPriceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.ProductionPrice{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

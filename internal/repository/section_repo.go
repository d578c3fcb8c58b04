package repository

import (
	"context"

	"github.com/ca-la/bin-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SectionRepository interface {
	ListFlatSketchesByDesign(ctx context.Context, designID uuid.UUID) ([]model.Section, error)
	ListPlacementsBySection(ctx context.Context, sectionID uuid.UUID) ([]model.FeaturePlacement, error)
}

type sectionRepo struct{ db *gorm.DB }

func NewSectionRepository(db *gorm.DB) SectionRepository { return &sectionRepo{db: db} }

func (r *sectionRepo) ListFlatSketchesByDesign(ctx context.Context, designID uuid.UUID) ([]model.Section, error) {
	var list []model.Section
	err := r.db.WithContext(ctx).
		Where("design_id = ? AND type = ?", designID, model.SectionTypeFlatSketch).
		Order("position asc").
		Find(&list).Error
	return list, err
}

func (r *sectionRepo) ListPlacementsBySection(ctx context.Context, sectionID uuid.UUID) ([]model.FeaturePlacement, error) {
	var list []model.FeaturePlacement
	err := r.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

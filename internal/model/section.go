package model

import (
	"time"

	"github.com/google/uuid"
)

const SectionTypeFlatSketch = "FLAT_SKETCH"

// Section is a canvas page of a design. Flat sketches without a template
// were drawn by the customer and need review before they can be priced.
type Section struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DesignID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Type         string    `gorm:"type:varchar(20);not null;default:'FLAT_SKETCH'"`
	Title        string
	TemplateName *string
	Position     int `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (Section) TableName() string { return "product_design_sections" }

// FeaturePlacement is artwork applied to a section with a print or
// embellishment process.
type FeaturePlacement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SectionID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	ProcessName *string   `gorm:"type:varchar(30)"`
	CreatedAt   time.Time
}

func (FeaturePlacement) TableName() string { return "product_design_feature_placements" }

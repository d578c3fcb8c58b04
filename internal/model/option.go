package model

import (
	"time"

	"github.com/google/uuid"
)

// Option is a fabric or trim from the material library.
// Type: "FABRIC" | "TRIM"
type Option struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type              string    `gorm:"type:varchar(20);not null"`
	Title             string    `gorm:"not null"`
	UnitCostCents     int64     `gorm:"not null;default:0"`
	PerMeterCostCents int64     `gorm:"not null;default:0"`
	SetupCostCents    int64     `gorm:"not null;default:0"`
	// UserID is nil for builtin library options.
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	IsBuiltin bool       `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (Option) TableName() string { return "product_design_options" }

// SelectedOption attaches an Option to a design, with how much of it each
// garment consumes and how it is finished.
type SelectedOption struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DesignID                uuid.UUID `gorm:"type:uuid;not null;index"`
	OptionID                uuid.UUID `gorm:"type:uuid;not null"`
	UnitsRequiredPerGarment int64     `gorm:"not null;default:1"`
	DyeProcessName          *string
	DyeProcessColor         *string
	WashProcessName         *string
	CreatedAt               time.Time

	Option Option `gorm:"foreignKey:OptionID"`
}

func (SelectedOption) TableName() string { return "product_design_selected_options" }

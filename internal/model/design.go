package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Design is a garment a customer is developing and producing.
// Status: "DRAFT" | "IN_REVIEW" | "NEEDS_DEVELOPMENT_PAYMENT" | "DEVELOPMENT" |
// "NEEDS_PRODUCTION_PAYMENT" | "IN_PRODUCTION" | "COMPLETE"
type Design struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	Title            string    `gorm:"not null;default:''"`
	RetailPriceCents *int64
	Status           string `gorm:"type:varchar(40);not null;default:'DRAFT'"`
	// OverridePricingTable, when set, replaces the computed table wholesale.
	OverridePricingTable datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Design) TableName() string { return "product_designs" }

// Variant is one size/color combination of a design with its order quantity.
type Variant struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DesignID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ColorName      string
	SizeName       string
	UnitsToProduce int64 `gorm:"not null;default:0"`
	Position       int   `gorm:"not null;default:0"`
	CreatedAt      time.Time
}

func (Variant) TableName() string { return "product_design_variants" }

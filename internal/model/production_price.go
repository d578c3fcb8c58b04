package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductionPrice is one tier of a partner's price table.
// PriceUnit: "GARMENT" | "METER" | "DESIGN"
type ProductionPrice struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendorUserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_production_price_lookup"`
	ServiceID      string    `gorm:"type:varchar(30);not null;index:idx_production_price_lookup"`
	Complexity     int       `gorm:"not null"`
	MinimumUnits   int64     `gorm:"not null;default:0"`
	PriceCents     int64     `gorm:"not null"`
	PriceUnit      string    `gorm:"type:varchar(10);not null"`
	SetupCostCents int64     `gorm:"not null;default:0"`
	CreatedAt      time.Time
}

func (ProductionPrice) TableName() string { return "production_prices" }

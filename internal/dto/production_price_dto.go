package dto

import "github.com/google/uuid"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateProductionPriceRequest struct {
	ServiceID      string `json:"service_id"       validate:"required,oneof=DESIGN SOURCING TECHNICAL_DESIGN PATTERN_MAKING SAMPLING PRODUCTION FULFILLMENT DYE WASH SCREEN_PRINT EMBROIDERY"`
	Complexity     *int   `json:"complexity_level" validate:"required,min=0,max=3"`
	MinimumUnits   int64  `json:"minimum_units"    validate:"min=0"`
	PriceCents     int64  `json:"price_cents"      validate:"min=0"`
	PriceUnit      string `json:"price_unit"       validate:"required,oneof=GARMENT METER DESIGN"`
	SetupCostCents int64  `json:"setup_cost_cents" validate:"min=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ProductionPriceResponse struct {
	ID             uuid.UUID `json:"id"`
	VendorUserID   uuid.UUID `json:"vendor_user_id"`
	ServiceID      string    `json:"service_id"`
	Complexity     int       `json:"complexity_level"`
	MinimumUnits   int64     `json:"minimum_units"`
	PriceCents     int64     `json:"price_cents"`
	PriceUnit      string    `json:"price_unit"`
	SetupCostCents int64     `json:"setup_cost_cents"`
	CreatedAt      string    `json:"created_at"`
}

package dto

import (
	"encoding/json"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

// SetOverrideRequest replaces the customer-facing pricing table of a design.
type SetOverrideRequest struct {
	PricingTable json.RawMessage `json:"pricing_table" validate:"required"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// FinalPricingResponse is what users who may only view pricing receive.
type FinalPricingResponse struct {
	FinalPricingTable json.RawMessage `json:"final_pricing_table"`
}

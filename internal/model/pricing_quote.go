package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	QuoteStatusPending = "pending"
	QuoteStatusReady   = "ready"
	QuoteStatusError   = "error"
)

// PricingQuote is a PDF snapshot of a design's final pricing table,
// rendered asynchronously by the quote worker.
// Status: "pending" | "ready" | "error"
type PricingQuote struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DesignID    uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestedBy uuid.UUID `gorm:"type:uuid;not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"`
	// PricingTable is the final table the PDF was rendered from.
	PricingTable datatypes.JSON `gorm:"type:jsonb"`
	// PDFPath is absolute, under QUOTE_STORAGE_PATH
	PDFPath   *string `gorm:"column:pdf_path"`
	Attempts  int     `gorm:"not null;default:0"`
	LastError *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PricingQuote) TableName() string { return "pricing_quotes" }

// All lists every persisted model, in foreign-key order.
func All() []any {
	return []any{
		&Design{},
		&Variant{},
		&Option{},
		&SelectedOption{},
		&Section{},
		&FeaturePlacement{},
		&DesignService{},
		&ProductionPrice{},
		&PricingQuote{},
	}
}

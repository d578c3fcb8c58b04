package dto

import "github.com/google/uuid"

// QuoteResponse is returned by the quote endpoints. PDFURL is set once the
// quote is ready.
type QuoteResponse struct {
	ID        uuid.UUID `json:"id"`
	DesignID  uuid.UUID `json:"design_id"`
	Status    string    `json:"status"`
	PDFURL    *string   `json:"pdf_url,omitempty"`
	LastError *string   `json:"last_error,omitempty"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

package infra

// pdf.go: Customer pricing quote generation using go-pdf/fpdf.
// Renders a single A4 page with:
//   - Company header, design title and quote timestamp
//   - One table per cost group (line item, quantity, unit price, total)
//   - Payment schedule (upfront / pre-production / upon completion / fulfillment)
//
// The output file is saved to storagePath/quote_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ca-la/bin-sub002/internal/pricing"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// QuoteDocument is everything printed on a quote.
type QuoteDocument struct {
	QuoteID     string
	CompanyName string
	DesignTitle string
	GeneratedAt time.Time
	Table       pricing.Table
}

// FormatCents renders integer cents as dollars, e.g. 123456 → "$1,234.56".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	s := decimal.New(cents, -2).StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}
	return sign + "$" + whole + frac
}

// GenerateQuotePDF writes the quote to storagePath (created if needed) and
// returns the absolute path of the generated file.
func GenerateQuotePDF(doc QuoteDocument, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath, err := filepath.Abs(filepath.Join(storagePath, fmt.Sprintf("quote_%s.pdf", doc.QuoteID)))
	if err != nil {
		return "", fmt.Errorf("pdf: resolve path: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(fmt.Sprintf("%s pricing quote", doc.DesignTitle), true)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, tr(doc.CompanyName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Pricing quote", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, tr(doc.DesignTitle), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Quote %s  ·  %s", doc.QuoteID, doc.GeneratedAt.UTC().Format("Jan 2, 2006 15:04 MST")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	col1 := contentW * 0.52 // title
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.18 // unit price
	col4 := contentW * 0.18 // total

	// ── Cost groups ──────────────────────────────────────────────────────────
	for _, g := range doc.Table.Groups {
		if len(g.LineItems) == 0 {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 7, tr(g.Title), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(col1, 6, "Item", "B", 0, "L", true, 0, "")
		pdf.CellFormat(col2, 6, "Qty", "B", 0, "R", true, 0, "")
		pdf.CellFormat(col3, 6, "Unit price", "B", 0, "R", true, 0, "")
		pdf.CellFormat(col4, 6, "Total", "B", 1, "R", true, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for _, li := range g.LineItems {
			pdf.CellFormat(col1, 5, tr(li.Title), "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, fmt.Sprintf("%d", li.Quantity), "", 0, "R", false, 0, "")
			pdf.CellFormat(col3, 5, FormatCents(li.UnitPriceCents), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 5, FormatCents(li.TotalPriceCents()), "", 1, "R", false, 0, "")
		}

		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(col1+col2+col3, 6, "Subtotal", "T", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, FormatCents(g.TotalPriceCents), "T", 1, "R", false, 0, "")
		pdf.Ln(3)
	}

	// ── Payment schedule ─────────────────────────────────────────────────────
	s := doc.Table.Summary
	schedule := []struct {
		label string
		cents int64
	}{
		{"Due upfront", s.UpfrontCostCents},
		{"Due before production", s.PreProductionCostCents},
		{"Due upon completion", s.UponCompletionCostCents},
		{"Fulfillment", s.FulfillmentCostCents},
	}

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 7, "Payment schedule", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range schedule {
		pdf.CellFormat(col1+col2+col3, 5, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 5, FormatCents(row.cents), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 7, FormatCents(doc.Table.Profit.TotalCostCents), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

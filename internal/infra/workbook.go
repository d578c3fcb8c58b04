package infra

import (
	"fmt"

	"github.com/ca-la/bin-sub002/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const pricingSheet = "Pricing"

var workbookHeaders = []string{"Group", "Item", "Quantity", "Unit Price", "Total"}

func dollars(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// RenderPricingWorkbook lays a pricing table out as a single-sheet xlsx: one
// row per line item, a subtotal per group, then the payment summary and the
// profit breakdown. Amounts are in dollars.
func RenderPricingWorkbook(designTitle string, table *pricing.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", pricingSheet); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	moneyFmt := "$#,##0.00"
	moneyStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	totalStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt})

	f.SetCellValue(pricingSheet, "A1", designTitle)
	f.SetCellStyle(pricingSheet, "A1", "A1", totalStyle)

	headerRow := 3
	for i, h := range workbookHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, headerRow)
		f.SetCellValue(pricingSheet, cell, h)
		f.SetCellStyle(pricingSheet, cell, cell, boldStyle)
	}

	row := headerRow + 1
	for _, g := range table.Groups {
		for _, li := range g.LineItems {
			f.SetCellValue(pricingSheet, fmt.Sprintf("A%d", row), g.Title)
			f.SetCellValue(pricingSheet, fmt.Sprintf("B%d", row), li.Title)
			f.SetCellValue(pricingSheet, fmt.Sprintf("C%d", row), li.Quantity)
			f.SetCellValue(pricingSheet, fmt.Sprintf("D%d", row), dollars(li.UnitPriceCents))
			f.SetCellValue(pricingSheet, fmt.Sprintf("E%d", row), dollars(li.TotalPriceCents()))
			f.SetCellStyle(pricingSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("E%d", row), moneyStyle)
			row++
		}
		f.SetCellValue(pricingSheet, fmt.Sprintf("A%d", row), g.Title+" subtotal")
		f.SetCellValue(pricingSheet, fmt.Sprintf("E%d", row), dollars(g.TotalPriceCents))
		f.SetCellStyle(pricingSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), totalStyle)
		row += 2
	}

	summary := []struct {
		label string
		cents int64
	}{
		{"Due upfront", table.Summary.UpfrontCostCents},
		{"Due before production", table.Summary.PreProductionCostCents},
		{"Due upon completion", table.Summary.UponCompletionCostCents},
		{"Fulfillment", table.Summary.FulfillmentCostCents},
		{"Total revenue", table.Profit.TotalRevenueCents},
		{"Total cost", table.Profit.TotalCostCents},
		{"Total profit", table.Profit.TotalProfitCents},
		{"Profit per unit", table.Profit.UnitProfitCents},
	}
	for _, s := range summary {
		f.SetCellValue(pricingSheet, fmt.Sprintf("A%d", row), s.label)
		f.SetCellValue(pricingSheet, fmt.Sprintf("E%d", row), dollars(s.cents))
		f.SetCellStyle(pricingSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), moneyStyle)
		row++
	}
	f.SetCellValue(pricingSheet, fmt.Sprintf("A%d", row), "Margin %")
	f.SetCellValue(pricingSheet, fmt.Sprintf("E%d", row), table.Profit.MarginPercentage)

	colWidths := []float64{26, 36, 10, 14, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(pricingSheet, col, col, w)
	}
	return f, nil
}

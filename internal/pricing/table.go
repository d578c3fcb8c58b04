package pricing

import (
	"bytes"
	"encoding/json"
	"math"
)

// CheckPrerequisites reports the first business precondition that prevents
// pricing the design. Every failure is a *MissingPrerequisitesError.
func CheckPrerequisites(in Input) error {
	if in.UnitsToProduce <= 0 {
		return missingPrerequisite("Design does not have any units to produce")
	}
	if in.RetailPriceCents <= 0 {
		return missingPrerequisite("Design does not have a retail price")
	}

	if !in.Status.PricingReviewed() {
		for _, s := range in.Sections {
			if s.IsCustom() {
				return missingPrerequisite("Custom sketches must be reviewed before pricing is available")
			}
		}
		if in.needs(ServiceDesign) {
			return missingPrerequisite("The design phase must be complete before pricing is available")
		}
	}

	for _, s := range in.Services {
		if s.VendorID == "" {
			return missingPrerequisite("Service %s does not have an assigned partner", s.ServiceID)
		}
		if s.Complexity == nil {
			return missingPrerequisite("Service %s does not have a complexity level", s.ServiceID)
		}
		if len(in.Prices[s.ServiceID]) == 0 {
			return missingPrerequisite("Assigned partner does not have a pricing table for %s", s.ServiceID)
		}
	}
	return nil
}

// Compute checks prerequisites, builds the cost groups and assembles them
// into a pricing table.
func Compute(in Input) (*Table, error) {
	if err := CheckPrerequisites(in); err != nil {
		return nil, err
	}
	g, err := buildGroups(&in)
	if err != nil {
		return nil, err
	}
	return assemble(&in, g), nil
}

// ComputeAll computes the table and resolves the final table against the
// design's override, if any.
func ComputeAll(in Input) (*AllTables, error) {
	computed, err := Compute(in)
	if err != nil {
		return nil, err
	}
	final, err := MergePricingTables(computed, in.Override)
	if err != nil {
		return nil, err
	}
	var override json.RawMessage
	if hasOverride(in.Override) {
		override = in.Override
	}
	return &AllTables{Computed: computed, Override: override, Final: final}, nil
}

// Assemble derives the payment summary and profit breakdown from groups
// produced by BuildGroups.
func Assemble(in Input, groups []Group) *Table {
	var g costGroups
	for _, grp := range groups {
		switch grp.Title {
		case GroupDevelopment:
			g.Development = grp
		case GroupMaterials:
			g.Materials = grp
		case GroupProduction:
			g.Production = grp
		case GroupFulfillment:
			g.Fulfillment = grp
		}
	}
	return assemble(&in, g)
}

func assemble(in *Input, g costGroups) *Table {
	development := g.Development.TotalPriceCents
	production := g.Production.TotalPriceCents
	fulfillment := g.Fulfillment.TotalPriceCents

	// Materials are already folded into production.
	totalCost := development + production + fulfillment
	revenue := in.RetailPriceCents * in.UnitsToProduce
	profit := revenue - totalCost

	installment := roundHalfUp(float64(production) / 2)

	return &Table{
		Summary: Summary{
			UpfrontCostCents:        development,
			PreProductionCostCents:  installment,
			UponCompletionCostCents: installment,
			FulfillmentCostCents:    fulfillment,
		},
		Groups: g.ordered(),
		Profit: Profit{
			TotalRevenueCents: revenue,
			TotalCostCents:    totalCost,
			TotalProfitCents:  profit,
			UnitProfitCents:   roundDiv(profit, in.UnitsToProduce),
			MarginPercentage:  marginPercentage(totalCost, revenue),
		},
	}
}

// MergePricingTables returns the table shown to customers. An admin override
// replaces the computed table wholesale.
func MergePricingTables(computed *Table, override json.RawMessage) (json.RawMessage, error) {
	if hasOverride(override) {
		out := make(json.RawMessage, len(override))
		copy(out, override)
		return out, nil
	}
	return json.Marshal(computed)
}

func hasOverride(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// marginPercentage is 0 when there is no revenue to divide by.
func marginPercentage(cost, revenue int64) int64 {
	if revenue == 0 {
		return 0
	}
	return roundHalfUp((1 - float64(cost)/float64(revenue)) * 100)
}

func roundDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	return roundHalfUp(float64(a) / float64(b))
}

package pricing

import "fmt"

const (
	GroupDevelopment = "Development"
	GroupMaterials   = "Materials & Processes"
	GroupProduction  = "Production"
	GroupFulfillment = "Fulfillment"
)

// costGroups is the output of the line builder before assembly.
type costGroups struct {
	Development Group
	Materials   Group
	Production  Group
	Fulfillment Group
}

func (g costGroups) ordered() []Group {
	return []Group{g.Development, g.Materials, g.Production, g.Fulfillment}
}

// newGroup totals its line items; a group's total is always the sum of
// quantity × unit price over its items.
func newGroup(title string, items []LineItem) Group {
	if items == nil {
		items = []LineItem{}
	}
	var total int64
	for _, li := range items {
		total += li.TotalPriceCents()
	}
	return Group{Title: title, LineItems: items, TotalPriceCents: total}
}

// BuildGroups translates enabled services, selected options and feature
// placements into the four cost groups, in display order.
func BuildGroups(in Input) ([]Group, error) {
	g, err := buildGroups(&in)
	if err != nil {
		return nil, err
	}
	return g.ordered(), nil
}

func buildGroups(in *Input) (costGroups, error) {
	var g costGroups
	var err error

	if g.Development, err = developmentGroup(in); err != nil {
		return g, err
	}
	if g.Materials, err = materialsGroup(in); err != nil {
		return g, err
	}
	if g.Production, err = productionGroup(in, g.Materials); err != nil {
		return g, err
	}
	if g.Fulfillment, err = fulfillmentGroup(in); err != nil {
		return g, err
	}
	return g, nil
}

func developmentGroup(in *Input) (Group, error) {
	var items []LineItem

	if in.needs(ServiceTechnicalDesign) {
		cost, err := in.ServicePerDesignCostCents(ServiceTechnicalDesign)
		if err != nil {
			return Group{}, err
		}
		items = append(items, LineItem{Title: "Technical Design", Quantity: 1, UnitPriceCents: cost})
	}

	if in.needs(ServicePatternMaking) {
		cost, err := in.ServicePerDesignCostCents(ServicePatternMaking)
		if err != nil {
			return Group{}, err
		}
		items = append(items, LineItem{Title: "Pattern Making", Quantity: 1, UnitPriceCents: cost})
		if in.SizeCount > 0 {
			items = append(items, LineItem{Title: "Grading", Quantity: in.SizeCount, UnitPriceCents: GradingCostCentsPerSize})
		}
	}

	if in.needs(ServiceSourcing) {
		partner, err := in.ServicePerDesignCostCents(ServiceSourcing)
		if err != nil {
			return Group{}, err
		}
		svc, _ := in.service(ServiceSourcing)
		testing, err := sourcingTestingCost(*svc.Complexity)
		if err != nil {
			return Group{}, err
		}
		items = append(items, LineItem{Title: "Sourcing & Testing", Quantity: 1, UnitPriceCents: partner + testing})
	}

	if in.needs(ServiceSampling) {
		cost, err := in.ServicePerGarmentCostCents(ServiceSampling)
		if err != nil {
			return Group{}, err
		}
		items = append(items, LineItem{Title: "Sampling", Quantity: 1, UnitPriceCents: cost})

		for _, o := range in.Options {
			if o.DyeProcessName != "" {
				dye, err := in.dyeCost(o)
				if err != nil {
					return Group{}, err
				}
				items = append(items, LineItem{
					Title:          fmt.Sprintf("Dye Sample: %s", o.Title),
					Quantity:       1,
					UnitPriceCents: dye.SetupCents + dye.PerUnitCents*o.UnitsRequiredPerGarment,
				})
			}
			if o.WashProcessName != "" {
				wash, err := in.washCost(o)
				if err != nil {
					return Group{}, err
				}
				items = append(items, LineItem{
					Title:          fmt.Sprintf("Wash Sample: %s", o.Title),
					Quantity:       1,
					UnitPriceCents: wash.SetupCents + wash.PerUnitCents*o.UnitsRequiredPerGarment,
				})
			}
		}

		for _, p := range in.Placements {
			cost, err := placementCost(p)
			if err != nil {
				return Group{}, err
			}
			items = append(items, LineItem{
				Title:          fmt.Sprintf("%s Sample: %s", p.ProcessName.Label(), p.Name),
				Quantity:       1,
				UnitPriceCents: cost.SetupCents + cost.PerUnitCents,
			})
		}
	}

	return newGroup(GroupDevelopment, items), nil
}

// materialsGroup is priced per garment.
func materialsGroup(in *Input) (Group, error) {
	var items []LineItem
	if !in.needs(ServiceProduction) {
		return newGroup(GroupMaterials, items), nil
	}

	for _, o := range in.Options {
		items = append(items, LineItem{
			Title:          o.Title,
			Quantity:       o.UnitsRequiredPerGarment,
			UnitPriceCents: o.PerUnitCostCents(),
		})
		if o.DyeProcessName != "" {
			dye, err := in.dyeCost(o)
			if err != nil {
				return Group{}, err
			}
			items = append(items, LineItem{
				Title:          fmt.Sprintf("Dye: %s", o.Title),
				Quantity:       1,
				UnitPriceCents: dye.PerUnitCents * o.UnitsRequiredPerGarment,
			})
		}
		if o.WashProcessName != "" {
			wash, err := in.washCost(o)
			if err != nil {
				return Group{}, err
			}
			items = append(items, LineItem{
				Title:          fmt.Sprintf("Wash: %s", o.Title),
				Quantity:       1,
				UnitPriceCents: wash.PerUnitCents * o.UnitsRequiredPerGarment,
			})
		}
	}

	for _, p := range in.Placements {
		cost, err := placementCost(p)
		if err != nil {
			return Group{}, err
		}
		items = append(items, LineItem{
			Title:          fmt.Sprintf("%s: %s", p.ProcessName.Label(), p.Name),
			Quantity:       1,
			UnitPriceCents: cost.PerUnitCents,
		})
	}

	g := newGroup(GroupMaterials, items)
	g.UnitPriceCents = g.TotalPriceCents
	return g, nil
}

func productionGroup(in *Input, materials Group) (Group, error) {
	var items []LineItem
	if !in.needs(ServiceProduction) {
		return newGroup(GroupProduction, items), nil
	}

	cutSew, err := in.ServicePerGarmentCostCents(ServiceProduction)
	if err != nil {
		return Group{}, err
	}
	items = append(items, LineItem{Title: "Cut, Sew & Trim", Quantity: in.UnitsToProduce, UnitPriceCents: cutSew})

	if materials.TotalPriceCents > 0 {
		items = append(items, LineItem{Title: "Materials", Quantity: in.UnitsToProduce, UnitPriceCents: materials.TotalPriceCents})
	}

	setup, err := in.ServiceSetupCostCents(ServiceProduction)
	if err != nil {
		return Group{}, err
	}
	if setup > 0 {
		items = append(items, LineItem{Title: "Production Setup", Quantity: 1, UnitPriceCents: setup})
	}

	for _, o := range in.Options {
		if o.SetupCostCents > 0 {
			items = append(items, LineItem{Title: fmt.Sprintf("Setup: %s", o.Title), Quantity: 1, UnitPriceCents: o.SetupCostCents})
		}
		if o.DyeProcessName != "" {
			dye, err := in.dyeCost(o)
			if err != nil {
				return Group{}, err
			}
			items = append(items, LineItem{Title: fmt.Sprintf("Dye Setup: %s", o.Title), Quantity: 1, UnitPriceCents: dye.SetupCents})
		}
		if o.WashProcessName != "" {
			wash, err := in.washCost(o)
			if err != nil {
				return Group{}, err
			}
			items = append(items, LineItem{Title: fmt.Sprintf("Wash Setup: %s", o.Title), Quantity: 1, UnitPriceCents: wash.SetupCents})
		}
	}

	for _, p := range in.Placements {
		cost, err := placementCost(p)
		if err != nil {
			return Group{}, err
		}
		items = append(items, LineItem{
			Title:          fmt.Sprintf("%s Setup: %s", p.ProcessName.Label(), p.Name),
			Quantity:       1,
			UnitPriceCents: cost.SetupCents,
		})
	}

	g := newGroup(GroupProduction, items)
	g.UnitPriceCents = roundDiv(g.TotalPriceCents, in.UnitsToProduce)
	return g, nil
}

func fulfillmentGroup(in *Input) (Group, error) {
	var items []LineItem
	if !in.needs(ServiceFulfillment) {
		return newGroup(GroupFulfillment, items), nil
	}

	cost, err := in.ServicePerGarmentCostCents(ServiceFulfillment)
	if err != nil {
		return Group{}, err
	}
	items = append(items, LineItem{Title: "Packaging & Fulfillment", Quantity: in.UnitsToProduce, UnitPriceCents: cost})

	g := newGroup(GroupFulfillment, items)
	g.UnitPriceCents = roundDiv(g.TotalPriceCents, in.UnitsToProduce)
	return g, nil
}

package service

import (
	"encoding/json"

	"github.com/ca-la/bin-sub002/internal/model"
	"github.com/ca-la/bin-sub002/internal/pricing"
)

// pricingSources is everything loaded from the database for one design.
type pricingSources struct {
	design     *model.Design
	variants   []model.Variant
	options    []model.SelectedOption
	sections   []model.Section
	placements [][]model.FeaturePlacement // parallel to sections
	services   []model.DesignService
	prices     [][]model.ProductionPrice // parallel to services
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// buildInput flattens the loaded rows into the calculator's Input.
func buildInput(src pricingSources) pricing.Input {
	in := pricing.Input{
		DesignID:         src.design.ID.String(),
		RetailPriceCents: deref(src.design.RetailPriceCents),
		Status:           pricing.DesignStatus(src.design.Status),
		Prices:           make(map[pricing.ServiceID][]pricing.ProductionPrice, len(src.services)),
	}
	if len(src.design.OverridePricingTable) > 0 {
		in.Override = json.RawMessage(src.design.OverridePricingTable)
	}

	sizes := make(map[string]struct{})
	for _, v := range src.variants {
		in.UnitsToProduce += v.UnitsToProduce
		if v.UnitsToProduce > 0 && v.SizeName != "" {
			sizes[v.SizeName] = struct{}{}
		}
	}
	in.SizeCount = int64(len(sizes))

	for _, o := range src.options {
		in.Options = append(in.Options, pricing.SelectedOption{
			Title:                   o.Option.Title,
			Type:                    pricing.OptionType(o.Option.Type),
			UnitsRequiredPerGarment: o.UnitsRequiredPerGarment,
			UnitCostCents:           o.Option.UnitCostCents,
			PerMeterCostCents:       o.Option.PerMeterCostCents,
			SetupCostCents:          o.Option.SetupCostCents,
			DyeProcessName:          deref(o.DyeProcessName),
			DyeProcessColor:         deref(o.DyeProcessColor),
			WashProcessName:         deref(o.WashProcessName),
		})
	}

	for i, sec := range src.sections {
		in.Sections = append(in.Sections, pricing.Section{
			ID:           sec.ID.String(),
			Title:        sec.Title,
			TemplateName: deref(sec.TemplateName),
		})
		if i >= len(src.placements) {
			continue
		}
		for _, p := range src.placements[i] {
			in.Placements = append(in.Placements, pricing.FeaturePlacement{
				ID:          p.ID.String(),
				SectionID:   sec.ID.String(),
				Name:        p.Name,
				ProcessName: pricing.ProcessName(deref(p.ProcessName)),
			})
		}
	}

	for i, svc := range src.services {
		id := pricing.ServiceID(svc.ServiceID)
		s := pricing.Service{ServiceID: id}
		if svc.VendorUserID != nil {
			s.VendorID = svc.VendorUserID.String()
		}
		if svc.ComplexityLevel != nil {
			c := pricing.Complexity(*svc.ComplexityLevel)
			s.Complexity = &c
		}
		in.Services = append(in.Services, s)

		if i >= len(src.prices) || len(src.prices[i]) == 0 {
			continue
		}
		rows := make([]pricing.ProductionPrice, 0, len(src.prices[i]))
		for _, p := range src.prices[i] {
			rows = append(rows, toPricingPrice(p))
		}
		in.Prices[id] = rows
	}
	return in
}

func toPricingPrice(p model.ProductionPrice) pricing.ProductionPrice {
	return pricing.ProductionPrice{
		ServiceID:      pricing.ServiceID(p.ServiceID),
		VendorID:       p.VendorUserID.String(),
		Complexity:     pricing.Complexity(p.Complexity),
		MinimumUnits:   p.MinimumUnits,
		PriceCents:     p.PriceCents,
		PriceUnit:      pricing.PriceUnit(p.PriceUnit),
		SetupCostCents: p.SetupCostCents,
	}
}

package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GetServicePrice picks the partner price row for serviceID at the given
// complexity whose minimum-unit tier is the tightest one reached by units.
func GetServicePrice(prices []ProductionPrice, serviceID ServiceID, units int64, complexity Complexity) (ProductionPrice, error) {
	matches := func(p ProductionPrice) bool {
		return p.ServiceID == serviceID && p.Complexity == complexity
	}

	found := false
	for _, p := range prices {
		if matches(p) {
			found = true
			break
		}
	}
	if !found {
		return ProductionPrice{}, fmt.Errorf("%w: %s at complexity %d", ErrNoServicePrice, serviceID, complexity)
	}

	row, ok := SelectTier(prices, matches, func(p ProductionPrice) int64 { return p.MinimumUnits }, units)
	if !ok {
		return ProductionPrice{}, fmt.Errorf("%w: %s at complexity %d for %d units", ErrNoPriceTier, serviceID, complexity, units)
	}
	return row, nil
}

type marginTier struct {
	serviceID    ServiceID
	minimumUnits int64
	margin       decimal.Decimal
}

func tier(id ServiceID, minimumUnits int64, margin string) marginTier {
	return marginTier{serviceID: id, minimumUnits: minimumUnits, margin: decimal.RequireFromString(margin)}
}

// Margins on one-off development work.
var developmentMargins = []marginTier{
	tier(ServiceDesign, 0, "0.2"),
	tier(ServiceSourcing, 0, "0.2"),
	tier(ServiceTechnicalDesign, 0, "0.2"),
	tier(ServicePatternMaking, 0, "0.2"),
	tier(ServiceSampling, 0, "0.25"),
}

// Margins on per-garment production work, tiered by order volume.
var productionMargins = []marginTier{
	tier(ServiceProduction, 0, "0.4"),
	tier(ServiceProduction, 100, "0.38"),
	tier(ServiceProduction, 250, "0.36"),
	tier(ServiceProduction, 500, "0.34"),
	tier(ServiceProduction, 1000, "0.32"),

	tier(ServiceFulfillment, 0, "0.2"),
	tier(ServiceFulfillment, 500, "0.15"),

	tier(ServiceDye, 0, "0.3"),
	tier(ServiceDye, 500, "0.25"),
	tier(ServiceWash, 0, "0.3"),
	tier(ServiceWash, 500, "0.25"),
	tier(ServiceScreenPrint, 0, "0.3"),
	tier(ServiceScreenPrint, 500, "0.25"),
	tier(ServiceEmbroidery, 0, "0.3"),
	tier(ServiceEmbroidery, 500, "0.25"),
}

var allMargins = append(append([]marginTier{}, developmentMargins...), productionMargins...)

// GetServiceMarginCents returns the margin to bill on top of a partner price.
// The margin is a share of the billed total, not a markup on cost: a 100¢
// partner price at a 0.2 margin bills 125¢, so the margin is 25¢.
func GetServiceMarginCents(serviceID ServiceID, partnerPriceCents, units int64) (int64, error) {
	matches := func(t marginTier) bool { return t.serviceID == serviceID }

	known := false
	for _, t := range allMargins {
		if matches(t) {
			known = true
			break
		}
	}
	if !known {
		return 0, fmt.Errorf("%w: %s", ErrUnknownService, serviceID)
	}

	t, ok := SelectTier(allMargins, matches, func(t marginTier) int64 { return t.minimumUnits }, units)
	if !ok {
		return 0, fmt.Errorf("%w: %s for %d units", ErrNoMarginTier, serviceID, units)
	}

	price := decimal.NewFromInt(partnerPriceCents)
	billed := price.Div(decimal.NewFromInt(1).Sub(t.margin))
	return billed.Sub(price).Round(0).IntPart(), nil
}

func (in *Input) service(id ServiceID) (Service, bool) {
	for _, s := range in.Services {
		if s.ServiceID == id {
			return s, true
		}
	}
	return Service{}, false
}

func (in *Input) needs(id ServiceID) bool {
	_, ok := in.service(id)
	return ok
}

func (in *Input) servicePrice(id ServiceID) (ProductionPrice, error) {
	svc, ok := in.service(id)
	if !ok {
		return ProductionPrice{}, fmt.Errorf("%w: %s", ErrServiceNotEnabled, id)
	}
	if svc.Complexity == nil {
		return ProductionPrice{}, missingPrerequisite("Service %s does not have a complexity level", id)
	}
	return GetServicePrice(in.Prices[id], id, in.UnitsToProduce, *svc.Complexity)
}

func (in *Input) withMargin(id ServiceID, partnerCents int64) (int64, error) {
	margin, err := GetServiceMarginCents(id, partnerCents, in.UnitsToProduce)
	if err != nil {
		return 0, err
	}
	return partnerCents + margin, nil
}

func (in *Input) serviceUnitCostCents(id ServiceID, unit PriceUnit) (int64, error) {
	row, err := in.servicePrice(id)
	if err != nil {
		return 0, err
	}
	if row.PriceUnit != unit {
		return 0, fmt.Errorf("%w: %s is priced per %s, not per %s", ErrPriceUnitMismatch, id, row.PriceUnit, unit)
	}
	return in.withMargin(id, row.PriceCents)
}

// ServicePerGarmentCostCents is the billed cost of one garment of work.
func (in *Input) ServicePerGarmentCostCents(id ServiceID) (int64, error) {
	return in.serviceUnitCostCents(id, PriceUnitGarment)
}

// ServicePerMeterCostCents is the billed cost of processing one meter.
func (in *Input) ServicePerMeterCostCents(id ServiceID) (int64, error) {
	return in.serviceUnitCostCents(id, PriceUnitMeter)
}

// ServicePerDesignCostCents is the billed flat cost for the whole design.
func (in *Input) ServicePerDesignCostCents(id ServiceID) (int64, error) {
	return in.serviceUnitCostCents(id, PriceUnitDesign)
}

// ServiceSetupCostCents is the billed one-time setup cost for a service.
func (in *Input) ServiceSetupCostCents(id ServiceID) (int64, error) {
	row, err := in.servicePrice(id)
	if err != nil {
		return 0, err
	}
	if row.SetupCostCents == 0 {
		return 0, nil
	}
	return in.withMargin(id, row.SetupCostCents)
}

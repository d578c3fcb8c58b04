// Package pricing turns a design's selected options, feature placements and
// partner services into a cost breakdown ("pricing table").
//
// Everything here is pure: callers aggregate the inputs into an Input value
// and the package derives line items, groups, a payment summary and a profit
// breakdown from it. Nothing is cached between calls.
package pricing

import "encoding/json"

// ServiceID identifies a unit of work a partner can be assigned to.
type ServiceID string

const (
	ServiceDesign          ServiceID = "DESIGN"
	ServiceSourcing        ServiceID = "SOURCING"
	ServiceTechnicalDesign ServiceID = "TECHNICAL_DESIGN"
	ServicePatternMaking   ServiceID = "PATTERN_MAKING"
	ServiceSampling        ServiceID = "SAMPLING"
	ServiceProduction      ServiceID = "PRODUCTION"
	ServiceFulfillment     ServiceID = "FULFILLMENT"

	// Process services. Partners may publish price tables for these; when a
	// design enables one, its partner price replaces the built-in process cost.
	ServiceDye         ServiceID = "DYE"
	ServiceWash        ServiceID = "WASH"
	ServiceScreenPrint ServiceID = "SCREEN_PRINT"
	ServiceEmbroidery  ServiceID = "EMBROIDERY"
)

// Complexity is the partner-assigned difficulty tier of a service.
type Complexity int

const (
	ComplexitySimple Complexity = iota
	ComplexityMedium
	ComplexityComplex
	ComplexityExtremelyComplex
)

// PriceUnit says what a partner price row is charged against.
type PriceUnit string

const (
	PriceUnitGarment PriceUnit = "GARMENT"
	PriceUnitMeter   PriceUnit = "METER"
	PriceUnitDesign  PriceUnit = "DESIGN"
)

// DesignStatus is the lifecycle stage of a design.
type DesignStatus string

const (
	StatusDraft                   DesignStatus = "DRAFT"
	StatusInReview                DesignStatus = "IN_REVIEW"
	StatusNeedsDevelopmentPayment DesignStatus = "NEEDS_DEVELOPMENT_PAYMENT"
	StatusDevelopment             DesignStatus = "DEVELOPMENT"
	StatusNeedsProductionPayment  DesignStatus = "NEEDS_PRODUCTION_PAYMENT"
	StatusInProduction            DesignStatus = "IN_PRODUCTION"
	StatusComplete                DesignStatus = "COMPLETE"
)

// PricingReviewed reports whether an admin has already reviewed the design,
// after which sketch and design-phase checks no longer gate pricing.
func (s DesignStatus) PricingReviewed() bool {
	switch s {
	case "", StatusDraft, StatusInReview:
		return false
	}
	return true
}

// ProcessName is the application type of a feature placement.
type ProcessName string

const (
	ProcessRollPrint       ProcessName = "ROLL_PRINT"
	ProcessEngineeredPrint ProcessName = "ENGINEERED_PRINT"
	ProcessSublimation     ProcessName = "SUBLIMATION"
	ProcessRotary          ProcessName = "ROTARY"
	ProcessScreenPrint     ProcessName = "SCREEN_PRINT"
	ProcessEmbroidery      ProcessName = "EMBROIDERY"
)

// OptionType distinguishes fabrics (priced per meter) from trims (per unit).
type OptionType string

const (
	OptionFabric OptionType = "FABRIC"
	OptionTrim   OptionType = "TRIM"
)

// ProductionPrice is one row of a partner's price table.
type ProductionPrice struct {
	ServiceID      ServiceID  `json:"service_id"`
	VendorID       string     `json:"vendor_id"`
	Complexity     Complexity `json:"complexity_level"`
	MinimumUnits   int64      `json:"minimum_units"`
	PriceCents     int64      `json:"price_cents"`
	PriceUnit      PriceUnit  `json:"price_unit"`
	SetupCostCents int64      `json:"setup_cost_cents"`
}

// SelectedOption is a fabric or trim chosen for a design, flattened with the
// option it references.
type SelectedOption struct {
	Title                   string
	Type                    OptionType
	UnitsRequiredPerGarment int64
	UnitCostCents           int64
	PerMeterCostCents       int64
	SetupCostCents          int64
	DyeProcessName          string
	DyeProcessColor         string
	WashProcessName         string
}

// PerUnitCostCents is the cost of one unit of the option as it is consumed
// per garment: meters for fabrics, pieces for trims.
func (o SelectedOption) PerUnitCostCents() int64 {
	if o.Type == OptionFabric && o.PerMeterCostCents > 0 {
		return o.PerMeterCostCents
	}
	return o.UnitCostCents
}

// Section is a flat-sketch section of a design. Sections without a template
// are custom sketches that need review.
type Section struct {
	ID           string
	Title        string
	TemplateName string
}

// IsCustom reports whether the section was drawn without a template.
func (s Section) IsCustom() bool { return s.TemplateName == "" }

// FeaturePlacement is an artwork applied to a section.
type FeaturePlacement struct {
	ID          string
	SectionID   string
	Name        string
	ProcessName ProcessName
}

// Service is a service enabled on a design. VendorID is empty and Complexity
// nil until an admin assigns them.
type Service struct {
	ServiceID  ServiceID
	VendorID   string
	Complexity *Complexity
}

// Input is everything the calculator needs for one design. It is built once
// per request and never mutated by this package.
type Input struct {
	DesignID         string
	RetailPriceCents int64
	Status           DesignStatus
	Override         json.RawMessage

	UnitsToProduce int64
	SizeCount      int64

	Options    []SelectedOption
	Sections   []Section
	Placements []FeaturePlacement
	Services   []Service

	// Prices holds the assigned partner's price rows, per enabled service.
	Prices map[ServiceID][]ProductionPrice
}

// LineItem is a priced quantity inside a group.
type LineItem struct {
	Title          string `json:"title"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// TotalPriceCents is quantity × unit price.
func (li LineItem) TotalPriceCents() int64 { return li.Quantity * li.UnitPriceCents }

// Group is a named set of line items.
type Group struct {
	Title           string     `json:"title"`
	LineItems       []LineItem `json:"line_items"`
	TotalPriceCents int64      `json:"total_price_cents"`
	UnitPriceCents  int64      `json:"unit_price_cents,omitempty"`
}

// Summary holds what is due at each payment milestone.
type Summary struct {
	UpfrontCostCents        int64 `json:"upfront_cost_cents"`
	PreProductionCostCents  int64 `json:"pre_production_cost_cents"`
	UponCompletionCostCents int64 `json:"upon_completion_cost_cents"`
	FulfillmentCostCents    int64 `json:"fulfillment_cost_cents"`
}

// Profit compares revenue at retail price with the total cost.
type Profit struct {
	TotalRevenueCents int64 `json:"total_revenue_cents"`
	TotalCostCents    int64 `json:"total_cost_cents"`
	TotalProfitCents  int64 `json:"total_profit_cents"`
	UnitProfitCents   int64 `json:"unit_profit_cents"`
	MarginPercentage  int64 `json:"margin_percentage"`
}

// Table is a computed pricing table.
type Table struct {
	Summary Summary `json:"summary"`
	Groups  []Group `json:"groups"`
	Profit  Profit  `json:"profit"`
}

// AllTables is what callers receive: the computed table, the admin override
// (if any) and the table that should be shown to the customer.
type AllTables struct {
	Computed *Table          `json:"computed_pricing_table"`
	Override json.RawMessage `json:"override_pricing_table"`
	Final    json.RawMessage `json:"final_pricing_table"`
}

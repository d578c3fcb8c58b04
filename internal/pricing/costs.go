package pricing

import "fmt"

// Built-in costs, in cents, for work that is not priced from a partner's
// price table.

// GradingCostCentsPerSize is charged once per distinct size.
const GradingCostCentsPerSize int64 = 5000

// Sourcing and material testing fee by complexity. Extremely complex
// sourcing has no agreed fee yet and must fail rather than default.
var sourcingTestingCostCents = map[Complexity]int64{
	ComplexitySimple:  10000,
	ComplexityMedium:  20000,
	ComplexityComplex: 35000,
}

type processCost struct {
	PerUnitCents int64
	SetupCents   int64
}

// Dye and wash costs are per unit of the option they finish.
var dyeProcessCosts = map[string]processCost{
	"GARMENT_DYE": {PerUnitCents: 250, SetupCents: 15000},
	"PIECE_DYE":   {PerUnitCents: 180, SetupCents: 10000},
}

var washProcessCosts = map[string]processCost{
	"ENZYME_WASH":   {PerUnitCents: 150, SetupCents: 8000},
	"STONE_WASH":    {PerUnitCents: 200, SetupCents: 9000},
	"ACID_WASH":     {PerUnitCents: 275, SetupCents: 12000},
	"SILICONE_WASH": {PerUnitCents: 100, SetupCents: 6000},
}

// Feature placement costs are per garment.
var placementProcessCosts = map[ProcessName]processCost{
	ProcessRollPrint:       {PerUnitCents: 300, SetupCents: 25000},
	ProcessEngineeredPrint: {PerUnitCents: 450, SetupCents: 40000},
	ProcessSublimation:     {PerUnitCents: 350, SetupCents: 20000},
	ProcessRotary:          {PerUnitCents: 250, SetupCents: 60000},
	ProcessScreenPrint:     {PerUnitCents: 200, SetupCents: 5000},
	ProcessEmbroidery:      {PerUnitCents: 400, SetupCents: 7500},
}

var processLabels = map[ProcessName]string{
	ProcessRollPrint:       "Roll Print",
	ProcessEngineeredPrint: "Engineered Print",
	ProcessSublimation:     "Sublimation",
	ProcessRotary:          "Rotary Print",
	ProcessScreenPrint:     "Screen Print",
	ProcessEmbroidery:      "Embroidery",
}

// Label is the human-readable name used in line item titles.
func (p ProcessName) Label() string {
	if l, ok := processLabels[p]; ok {
		return l
	}
	return string(p)
}

func sourcingTestingCost(c Complexity) (int64, error) {
	cost, ok := sourcingTestingCostCents[c]
	if !ok {
		return 0, fmt.Errorf("%w: sourcing at complexity %d", ErrUnconfiguredCost, c)
	}
	return cost, nil
}

// finishingCost resolves a dye or wash process. When the design enables the
// matching process service, the partner's per-meter price applies; otherwise
// the built-in table for the process name does.
func (in *Input) finishingCost(svc ServiceID, table map[string]processCost, name string) (processCost, error) {
	if in.needs(svc) {
		perUnit, err := in.ServicePerMeterCostCents(svc)
		if err != nil {
			return processCost{}, err
		}
		setup, err := in.ServiceSetupCostCents(svc)
		if err != nil {
			return processCost{}, err
		}
		return processCost{PerUnitCents: perUnit, SetupCents: setup}, nil
	}
	cost, ok := table[name]
	if !ok {
		return processCost{}, fmt.Errorf("%w: %s process %q", ErrUnknownProcess, svc, name)
	}
	return cost, nil
}

func (in *Input) dyeCost(o SelectedOption) (processCost, error) {
	return in.finishingCost(ServiceDye, dyeProcessCosts, o.DyeProcessName)
}

func (in *Input) washCost(o SelectedOption) (processCost, error) {
	return in.finishingCost(ServiceWash, washProcessCosts, o.WashProcessName)
}

func placementCost(p FeaturePlacement) (processCost, error) {
	if p.ProcessName == "" {
		return processCost{}, missingPrerequisite("Artwork %q is missing an application type", p.Name)
	}
	cost, ok := placementProcessCosts[p.ProcessName]
	if !ok {
		return processCost{}, fmt.Errorf("%w: feature placement process %q", ErrUnknownProcess, p.ProcessName)
	}
	return cost, nil
}

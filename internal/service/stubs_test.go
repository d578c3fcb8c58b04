package service

import (
	"context"
	"sync"
	"time"

	"github.com/ca-la/bin-sub002/internal/model"
	"github.com/ca-la/bin-sub002/internal/repository"
	"github.com/ca-la/bin-sub002/internal/worker"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ── In-memory Repository Stubs ────────────────────────────────────────────────

var (
	_ repository.DesignRepository          = (*stubDesignRepo)(nil)
	_ repository.SelectedOptionRepository  = (*stubOptionRepo)(nil)
	_ repository.SectionRepository         = (*stubSectionRepo)(nil)
	_ repository.DesignServiceRepository   = (*stubDesignServiceRepo)(nil)
	_ repository.ProductionPriceRepository = (*stubPriceRepo)(nil)
	_ repository.PricingQuoteRepository    = (*stubQuoteRepo)(nil)
	_ QuoteDispatcher                      = (*stubDispatcher)(nil)
)

type stubDesignRepo struct {
	mu       sync.Mutex
	designs  map[uuid.UUID]*model.Design
	variants map[uuid.UUID][]model.Variant
}

func (r *stubDesignRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Design, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.designs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *stubDesignRepo) ListVariants(_ context.Context, designID uuid.UUID) ([]model.Variant, error) {
	return r.variants[designID], nil
}

func (r *stubDesignRepo) UpdateOverride(_ context.Context, id uuid.UUID, table datatypes.JSON) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.designs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.OverridePricingTable = table
	return nil
}

type stubOptionRepo struct {
	byDesign map[uuid.UUID][]model.SelectedOption
	err      error
}

func (r *stubOptionRepo) ListByDesign(_ context.Context, designID uuid.UUID) ([]model.SelectedOption, error) {
	return r.byDesign[designID], r.err
}

type stubSectionRepo struct {
	sections   map[uuid.UUID][]model.Section
	placements map[uuid.UUID][]model.FeaturePlacement
}

func (r *stubSectionRepo) ListFlatSketchesByDesign(_ context.Context, designID uuid.UUID) ([]model.Section, error) {
	return r.sections[designID], nil
}

func (r *stubSectionRepo) ListPlacementsBySection(_ context.Context, sectionID uuid.UUID) ([]model.FeaturePlacement, error) {
	return r.placements[sectionID], nil
}

type stubDesignServiceRepo struct {
	byDesign map[uuid.UUID][]model.DesignService
}

func (r *stubDesignServiceRepo) ListByDesign(_ context.Context, designID uuid.UUID) ([]model.DesignService, error) {
	return r.byDesign[designID], nil
}

type stubPriceRepo struct {
	mu      sync.Mutex
	rows    []model.ProductionPrice
	err     error
	queried map[string]int // service id → lookups
}

func (r *stubPriceRepo) ListByVendorAndService(_ context.Context, vendorID uuid.UUID, serviceID string) ([]model.ProductionPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.queried == nil {
		r.queried = make(map[string]int)
	}
	r.queried[serviceID]++
	if r.err != nil {
		return nil, r.err
	}
	var out []model.ProductionPrice
	for _, p := range r.rows {
		if p.VendorUserID == vendorID && p.ServiceID == serviceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPriceRepo) ListByVendor(_ context.Context, vendorID uuid.UUID) ([]model.ProductionPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ProductionPrice
	for _, p := range r.rows {
		if p.VendorUserID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPriceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductionPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			cp := r.rows[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPriceRepo) Create(_ context.Context, p *model.ProductionPrice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	r.rows = append(r.rows, *p)
	return nil
}

func (r *stubPriceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubQuoteRepo struct {
	quotes map[uuid.UUID]*model.PricingQuote
}

func newStubQuoteRepo() *stubQuoteRepo {
	return &stubQuoteRepo{quotes: make(map[uuid.UUID]*model.PricingQuote)}
}

func (r *stubQuoteRepo) Create(_ context.Context, q *model.PricingQuote) error {
	q.CreatedAt = time.Now()
	q.UpdatedAt = q.CreatedAt
	cp := *q
	r.quotes[q.ID] = &cp
	return nil
}

func (r *stubQuoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PricingQuote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *stubQuoteRepo) Update(_ context.Context, q *model.PricingQuote) error {
	cp := *q
	r.quotes[q.ID] = &cp
	return nil
}

func (r *stubQuoteRepo) ListStalePending(context.Context, time.Time, int) ([]model.PricingQuote, error) {
	return nil, nil
}

func (r *stubQuoteRepo) UpdatePending(_ context.Context, q *model.PricingQuote) (bool, error) {
	stored, ok := r.quotes[q.ID]
	if !ok || stored.Status != model.QuoteStatusPending {
		return false, nil
	}
	stored.Status = q.Status
	stored.Attempts = q.Attempts
	stored.LastError = q.LastError
	return true, nil
}

type stubDispatcher struct {
	jobs []worker.PricingQuoteJob
	err  error
}

func (d *stubDispatcher) EnqueuePricingQuote(_ context.Context, payload worker.PricingQuoteJob) error {
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, payload)
	return nil
}

// ── Fixture ───────────────────────────────────────────────────────────────────

type pricingFixture struct {
	designID uuid.UUID
	ownerID  uuid.UUID
	maker    uuid.UUID // pattern making, sampling, production
	shipper  uuid.UUID // fulfillment

	designs  *stubDesignRepo
	options  *stubOptionRepo
	sections *stubSectionRepo
	services *stubDesignServiceRepo
	prices   *stubPriceRepo
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func i64Ptr(i int64) *int64   { return &i }

// newPricingFixture stores a design with pattern making, sampling,
// production and fulfillment, a dyed fabric, a trim and a screen-printed
// artwork. 150 units over two sizes, retail $120.
func newPricingFixture() *pricingFixture {
	f := &pricingFixture{
		designID: uuid.New(),
		ownerID:  uuid.New(),
		maker:    uuid.New(),
		shipper:  uuid.New(),
	}
	sectionID := uuid.New()

	f.designs = &stubDesignRepo{
		designs: map[uuid.UUID]*model.Design{
			f.designID: {
				ID:               f.designID,
				UserID:           f.ownerID,
				Title:            "Field Jacket",
				RetailPriceCents: i64Ptr(12000),
				Status:           "DRAFT",
			},
		},
		variants: map[uuid.UUID][]model.Variant{
			f.designID: {
				{ID: uuid.New(), DesignID: f.designID, ColorName: "Indigo", SizeName: "S", UnitsToProduce: 75},
				{ID: uuid.New(), DesignID: f.designID, ColorName: "Indigo", SizeName: "M", UnitsToProduce: 75},
				{ID: uuid.New(), DesignID: f.designID, ColorName: "Indigo", SizeName: "L", UnitsToProduce: 0},
			},
		},
	}
	f.options = &stubOptionRepo{byDesign: map[uuid.UUID][]model.SelectedOption{
		f.designID: {
			{
				DesignID:                f.designID,
				UnitsRequiredPerGarment: 2,
				DyeProcessName:          strPtr("GARMENT_DYE"),
				DyeProcessColor:         strPtr("Indigo"),
				Option:                  model.Option{Type: "FABRIC", Title: "Cotton Twill", PerMeterCostCents: 700, SetupCostCents: 5000},
			},
			{
				DesignID:                f.designID,
				UnitsRequiredPerGarment: 4,
				Option:                  model.Option{Type: "TRIM", Title: "Metal Button", UnitCostCents: 25},
			},
		},
	}}
	f.sections = &stubSectionRepo{
		sections: map[uuid.UUID][]model.Section{
			f.designID: {{ID: sectionID, DesignID: f.designID, Type: model.SectionTypeFlatSketch, Title: "Front", TemplateName: strPtr("tshirt")}},
		},
		placements: map[uuid.UUID][]model.FeaturePlacement{
			sectionID: {{ID: uuid.New(), SectionID: sectionID, Name: "Logo", ProcessName: strPtr("SCREEN_PRINT")}},
		},
	}
	f.services = &stubDesignServiceRepo{byDesign: map[uuid.UUID][]model.DesignService{
		f.designID: {
			{DesignID: f.designID, ServiceID: "PATTERN_MAKING", VendorUserID: &f.maker, ComplexityLevel: intPtr(1)},
			{DesignID: f.designID, ServiceID: "SAMPLING", VendorUserID: &f.maker, ComplexityLevel: intPtr(1)},
			{DesignID: f.designID, ServiceID: "PRODUCTION", VendorUserID: &f.maker, ComplexityLevel: intPtr(1)},
			{DesignID: f.designID, ServiceID: "FULFILLMENT", VendorUserID: &f.shipper, ComplexityLevel: intPtr(0)},
		},
	}}
	f.prices = &stubPriceRepo{rows: []model.ProductionPrice{
		{ID: uuid.New(), VendorUserID: f.maker, ServiceID: "PATTERN_MAKING", Complexity: 1, PriceCents: 40000, PriceUnit: "DESIGN"},
		{ID: uuid.New(), VendorUserID: f.maker, ServiceID: "SAMPLING", Complexity: 1, PriceCents: 8000, PriceUnit: "GARMENT"},
		{ID: uuid.New(), VendorUserID: f.maker, ServiceID: "PRODUCTION", Complexity: 1, MinimumUnits: 0, PriceCents: 2000, PriceUnit: "GARMENT"},
		{ID: uuid.New(), VendorUserID: f.maker, ServiceID: "PRODUCTION", Complexity: 1, MinimumUnits: 100, PriceCents: 1800, PriceUnit: "GARMENT", SetupCostCents: 30000},
		{ID: uuid.New(), VendorUserID: f.shipper, ServiceID: "FULFILLMENT", Complexity: 0, PriceCents: 300, PriceUnit: "GARMENT"},
	}}
	return f
}

func (f *pricingFixture) service() PricingService {
	return NewPricingService(f.designs, f.options, f.sections, f.services, f.prices)
}

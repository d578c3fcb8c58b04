package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ca-la/bin-sub002/internal/infra"
	"github.com/ca-la/bin-sub002/internal/model"
	"github.com/ca-la/bin-sub002/internal/pricing"
	"github.com/ca-la/bin-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

type PricingService interface {
	FindDesign(ctx context.Context, id uuid.UUID) (*model.Design, error)
	// ComputeAllPricingTables returns the computed, override and final tables
	// of a design. A *pricing.MissingPrerequisitesError in the chain means the
	// design cannot be priced yet.
	ComputeAllPricingTables(ctx context.Context, designID uuid.UUID) (*pricing.AllTables, error)
	SetOverride(ctx context.Context, designID uuid.UUID, table json.RawMessage) error
	ClearOverride(ctx context.Context, designID uuid.UUID) error
	// ExportWorkbook renders the final table as xlsx. The caller closes the file.
	ExportWorkbook(ctx context.Context, designID uuid.UUID) (*excelize.File, string, error)
}

type pricingService struct {
	designs  repository.DesignRepository
	options  repository.SelectedOptionRepository
	sections repository.SectionRepository
	services repository.DesignServiceRepository
	prices   repository.ProductionPriceRepository
}

func NewPricingService(
	designs repository.DesignRepository,
	options repository.SelectedOptionRepository,
	sections repository.SectionRepository,
	services repository.DesignServiceRepository,
	prices repository.ProductionPriceRepository,
) PricingService {
	return &pricingService{
		designs:  designs,
		options:  options,
		sections: sections,
		services: services,
		prices:   prices,
	}
}

func (s *pricingService) FindDesign(ctx context.Context, id uuid.UUID) (*model.Design, error) {
	d, err := s.designs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "design")
	}
	return d, nil
}

func (s *pricingService) ComputeAllPricingTables(ctx context.Context, designID uuid.UUID) (*pricing.AllTables, error) {
	design, err := s.FindDesign(ctx, designID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	in, err := s.loadInput(ctx, design)
	if err != nil {
		return nil, fmt.Errorf("load pricing input for design %s: %w", designID, err)
	}

	tables, err := pricing.ComputeAll(in)
	if err != nil {
		return nil, fmt.Errorf("compute pricing for design %s: %w", designID, err)
	}

	log.Debug().
		Str("design_id", designID.String()).
		Int64("units", in.UnitsToProduce).
		Int("services", len(in.Services)).
		Bool("override", tables.Override != nil).
		Dur("took", time.Since(start)).
		Msg("pricing tables computed")
	return tables, nil
}

// ── Input aggregation ─────────────────────────────────────────────────────────
// Two fan-out rounds: rows that depend only on the design, then rows that
// depend on the first round (placements per section, prices per assigned
// service). Any failure cancels the round; no partial input is built.

func (s *pricingService) loadInput(ctx context.Context, design *model.Design) (pricing.Input, error) {
	src := pricingSources{design: design}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if src.variants, err = s.designs.ListVariants(gctx, design.ID); err != nil {
			return fmt.Errorf("list variants: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if src.options, err = s.options.ListByDesign(gctx, design.ID); err != nil {
			return fmt.Errorf("list selected options: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if src.sections, err = s.sections.ListFlatSketchesByDesign(gctx, design.ID); err != nil {
			return fmt.Errorf("list sections: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if src.services, err = s.services.ListByDesign(gctx, design.ID); err != nil {
			return fmt.Errorf("list design services: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return pricing.Input{}, err
	}

	src.placements = make([][]model.FeaturePlacement, len(src.sections))
	src.prices = make([][]model.ProductionPrice, len(src.services))

	g, gctx = errgroup.WithContext(ctx)
	for i, sec := range src.sections {
		g.Go(func() error {
			rows, err := s.sections.ListPlacementsBySection(gctx, sec.ID)
			if err != nil {
				return fmt.Errorf("list placements of section %s: %w", sec.ID, err)
			}
			src.placements[i] = rows
			return nil
		})
	}
	for i, svc := range src.services {
		if svc.VendorUserID == nil {
			continue
		}
		g.Go(func() error {
			rows, err := s.prices.ListByVendorAndService(gctx, *svc.VendorUserID, svc.ServiceID)
			if err != nil {
				return fmt.Errorf("list %s prices of partner %s: %w", svc.ServiceID, *svc.VendorUserID, err)
			}
			src.prices[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return pricing.Input{}, err
	}

	return buildInput(src), nil
}

// ── Override ──────────────────────────────────────────────────────────────────

func (s *pricingService) SetOverride(ctx context.Context, designID uuid.UUID, table json.RawMessage) error {
	if err := validateOverride(table); err != nil {
		return err
	}
	if err := s.designs.UpdateOverride(ctx, designID, datatypes.JSON(table)); err != nil {
		return notFound(err, "design")
	}
	log.Info().Str("design_id", designID.String()).Msg("pricing override set")
	return nil
}

func (s *pricingService) ClearOverride(ctx context.Context, designID uuid.UUID) error {
	if err := s.designs.UpdateOverride(ctx, designID, nil); err != nil {
		return notFound(err, "design")
	}
	log.Info().Str("design_id", designID.String()).Msg("pricing override cleared")
	return nil
}

// validateOverride requires a JSON object that decodes as a pricing table.
// The stored bytes are kept verbatim.
func validateOverride(table json.RawMessage) error {
	trimmed := strings.TrimSpace(string(table))
	if !strings.HasPrefix(trimmed, "{") {
		return ErrInvalidOverride
	}
	var t pricing.Table
	if err := json.Unmarshal(table, &t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOverride, err)
	}
	return nil
}

// ── Export ────────────────────────────────────────────────────────────────────

func (s *pricingService) ExportWorkbook(ctx context.Context, designID uuid.UUID) (*excelize.File, string, error) {
	design, err := s.FindDesign(ctx, designID)
	if err != nil {
		return nil, "", err
	}
	tables, err := s.ComputeAllPricingTables(ctx, designID)
	if err != nil {
		return nil, "", err
	}

	var final pricing.Table
	if err := json.Unmarshal(tables.Final, &final); err != nil {
		return nil, "", fmt.Errorf("decode final pricing table: %w", err)
	}

	title := design.Title
	if title == "" {
		title = "Untitled design"
	}
	f, err := infra.RenderPricingWorkbook(title, &final)
	if err != nil {
		return nil, "", err
	}
	return f, fmt.Sprintf("pricing_%s.xlsx", designID), nil
}

package service

import (
	"context"
	"time"

	"github.com/ca-la/bin-sub002/internal/dto"
	"github.com/ca-la/bin-sub002/internal/model"
	"github.com/ca-la/bin-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ProductionPriceService manages partner price tables.
type ProductionPriceService interface {
	List(ctx context.Context, vendorID uuid.UUID) ([]dto.ProductionPriceResponse, error)
	Create(ctx context.Context, vendorID uuid.UUID, req dto.CreateProductionPriceRequest) (dto.ProductionPriceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productionPriceService struct {
	repo repository.ProductionPriceRepository
}

func NewProductionPriceService(repo repository.ProductionPriceRepository) ProductionPriceService {
	return &productionPriceService{repo: repo}
}

func mapProductionPrice(p model.ProductionPrice) dto.ProductionPriceResponse {
	return dto.ProductionPriceResponse{
		ID:             p.ID,
		VendorUserID:   p.VendorUserID,
		ServiceID:      p.ServiceID,
		Complexity:     p.Complexity,
		MinimumUnits:   p.MinimumUnits,
		PriceCents:     p.PriceCents,
		PriceUnit:      p.PriceUnit,
		SetupCostCents: p.SetupCostCents,
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *productionPriceService) List(ctx context.Context, vendorID uuid.UUID) ([]dto.ProductionPriceResponse, error) {
	rows, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductionPriceResponse, 0, len(rows))
	for _, p := range rows {
		result = append(result, mapProductionPrice(p))
	}
	return result, nil
}

func (s *productionPriceService) Create(ctx context.Context, vendorID uuid.UUID, req dto.CreateProductionPriceRequest) (dto.ProductionPriceResponse, error) {
	// One row per tier threshold
	existing, err := s.repo.ListByVendorAndService(ctx, vendorID, req.ServiceID)
	if err != nil {
		return dto.ProductionPriceResponse{}, err
	}
	for _, e := range existing {
		if e.Complexity == *req.Complexity && e.MinimumUnits == req.MinimumUnits {
			return dto.ProductionPriceResponse{}, ErrDuplicateTier
		}
	}

	p := &model.ProductionPrice{
		VendorUserID:   vendorID,
		ServiceID:      req.ServiceID,
		Complexity:     *req.Complexity,
		MinimumUnits:   req.MinimumUnits,
		PriceCents:     req.PriceCents,
		PriceUnit:      req.PriceUnit,
		SetupCostCents: req.SetupCostCents,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return dto.ProductionPriceResponse{}, err
	}
	log.Info().
		Str("vendor_id", vendorID.String()).
		Str("service_id", p.ServiceID).
		Int("complexity", p.Complexity).
		Int64("minimum_units", p.MinimumUnits).
		Msg("production price created")
	return mapProductionPrice(*p), nil
}

func (s *productionPriceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "production price")
	}
	return nil
}

package service

import (
	"context"
	"testing"

	"github.com/ca-la/bin-sub002/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPriceRequest(serviceID string, complexity int, minUnits, cents int64) dto.CreateProductionPriceRequest {
	return dto.CreateProductionPriceRequest{
		ServiceID:    serviceID,
		Complexity:   &complexity,
		MinimumUnits: minUnits,
		PriceCents:   cents,
		PriceUnit:    "GARMENT",
	}
}

func TestProductionPrice_CreateAndList(t *testing.T) {
	repo := &stubPriceRepo{}
	svc := NewProductionPriceService(repo)
	vendor := uuid.New()
	ctx := context.Background()

	created, err := svc.Create(ctx, vendor, newPriceRequest("PRODUCTION", 1, 100, 1800))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, vendor, created.VendorUserID)
	assert.Equal(t, int64(1800), created.PriceCents)
	assert.NotEmpty(t, created.CreatedAt)

	_, err = svc.Create(ctx, uuid.New(), newPriceRequest("PRODUCTION", 1, 100, 1500))
	require.NoError(t, err)

	list, err := svc.List(ctx, vendor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestProductionPrice_DuplicateTierRejected(t *testing.T) {
	repo := &stubPriceRepo{}
	svc := NewProductionPriceService(repo)
	vendor := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, vendor, newPriceRequest("SAMPLING", 0, 0, 8000))
	require.NoError(t, err)

	_, err = svc.Create(ctx, vendor, newPriceRequest("SAMPLING", 0, 0, 7000))
	assert.ErrorIs(t, err, ErrDuplicateTier)

	// Same threshold at another complexity is a different tier.
	_, err = svc.Create(ctx, vendor, newPriceRequest("SAMPLING", 1, 0, 9000))
	assert.NoError(t, err)
	assert.Len(t, repo.rows, 2)
}

func TestProductionPrice_Delete(t *testing.T) {
	repo := &stubPriceRepo{}
	svc := NewProductionPriceService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), newPriceRequest("FULFILLMENT", 0, 0, 300))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, repo.rows)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

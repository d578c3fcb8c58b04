//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ca-la/bin-sub002/internal/infra"
	"github.com/ca-la/bin-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(rdURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestCachedProductionPriceRepository_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	rdb := startRedis(t)

	vendor := uuid.New()
	next := &countingPriceRepo{rows: []model.ProductionPrice{
		{ID: uuid.New(), VendorUserID: vendor, ServiceID: "SAMPLING", Complexity: 0, PriceCents: 8000, PriceUnit: "GARMENT"},
	}}
	repo := NewCachedProductionPriceRepository(next, rdb, nil, time.Minute)

	first, err := repo.ListByVendorAndService(ctx, vendor, "SAMPLING")
	require.NoError(t, err)
	second, err := repo.ListByVendorAndService(ctx, vendor, "SAMPLING")
	require.NoError(t, err)
	assert.Equal(t, 1, next.lookups, "second read is served from Redis")
	assert.Equal(t, first[0].PriceCents, second[0].PriceCents)

	ttl, err := rdb.TTL(ctx, productionPriceCacheKey(vendor, "SAMPLING", 0)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	require.NoError(t, repo.Create(ctx, &model.ProductionPrice{VendorUserID: vendor, ServiceID: "SAMPLING", Complexity: 0, MinimumUnits: 50, PriceCents: 7000, PriceUnit: "GARMENT"}))

	rows, err := repo.ListByVendorAndService(ctx, vendor, "SAMPLING")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2, next.lookups)
}

func TestCachedProductionPriceRepository_WriteDuringFillIsNotMasked(t *testing.T) {
	ctx := context.Background()
	rdb := startRedis(t)

	vendor := uuid.New()
	next := &countingPriceRepo{rows: []model.ProductionPrice{
		{ID: uuid.New(), VendorUserID: vendor, ServiceID: "PRODUCTION", Complexity: 1, PriceCents: 1800, PriceUnit: "GARMENT"},
	}}
	repo := NewCachedProductionPriceRepository(next, rdb, nil, time.Minute)

	// The reader takes its snapshot, then a write commits and invalidates
	// before the reader fills the cache.
	next.afterRead = func() {
		next.afterRead = nil
		require.NoError(t, repo.Create(ctx, &model.ProductionPrice{
			VendorUserID: vendor, ServiceID: "PRODUCTION", Complexity: 1, MinimumUnits: 500, PriceCents: 1500, PriceUnit: "GARMENT",
		}))
	}

	stale, err := repo.ListByVendorAndService(ctx, vendor, "PRODUCTION")
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	fresh, err := repo.ListByVendorAndService(ctx, vendor, "PRODUCTION")
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

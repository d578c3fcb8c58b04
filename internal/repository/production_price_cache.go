package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ca-la/bin-sub002/internal/infra"
	"github.com/ca-la/bin-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// cachedProductionPriceRepo is a Redis read-through cache in front of the
// per-service partner price lookup. Entries live under a versioned key; a
// write bumps the version after it commits, so a fill that read the old rows
// can only land under a version nobody reads anymore. Redis calls go through
// a circuit breaker and any cache failure falls back to the DB.
type cachedProductionPriceRepo struct {
	ProductionPriceRepository
	rdb *redis.Client
	cb  *infra.CircuitBreaker
	ttl time.Duration
}

// NewCachedProductionPriceRepository wraps next with a Redis cache. A nil
// client or a non-positive ttl disables caching.
func NewCachedProductionPriceRepository(next ProductionPriceRepository, rdb *redis.Client, cb *infra.CircuitBreaker, ttl time.Duration) ProductionPriceRepository {
	if rdb == nil || ttl <= 0 {
		return next
	}
	if cb == nil {
		cb = infra.NewCircuitBreaker(0, 0)
	}
	return &cachedProductionPriceRepo{ProductionPriceRepository: next, rdb: rdb, cb: cb, ttl: ttl}
}

// The version key has no TTL: if it expired and restarted at 0, entries
// written under the old 0 could be read again.
func productionPriceVersionKey(vendorID uuid.UUID, serviceID string) string {
	return fmt.Sprintf("production_prices:ver:%s:%s", vendorID, serviceID)
}

func productionPriceCacheKey(vendorID uuid.UUID, serviceID string, version int64) string {
	return fmt.Sprintf("production_prices:%s:%s:v%d", vendorID, serviceID, version)
}

func (r *cachedProductionPriceRepo) ListByVendorAndService(ctx context.Context, vendorID uuid.UUID, serviceID string) ([]model.ProductionPrice, error) {
	var (
		key    string
		cached []byte
	)
	err := r.cb.Execute(func() error {
		version, err := r.rdb.Get(ctx, productionPriceVersionKey(vendorID, serviceID)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		key = productionPriceCacheKey(vendorID, serviceID, version)

		b, err := r.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		cached = b
		return err
	})
	if err == nil && cached != nil {
		var rows []model.ProductionPrice
		if jsonErr := json.Unmarshal(cached, &rows); jsonErr == nil {
			return rows, nil
		}
	}

	rows, dbErr := r.ProductionPriceRepository.ListByVendorAndService(ctx, vendorID, serviceID)
	if dbErr != nil {
		return nil, dbErr
	}

	// Populate only when the version was read; best effort.
	if err == nil {
		if b, jsonErr := json.Marshal(rows); jsonErr == nil {
			setErr := r.cb.Execute(func() error { return r.rdb.Set(ctx, key, b, r.ttl).Err() })
			if setErr != nil && !errors.Is(setErr, infra.ErrCircuitOpen) {
				log.Warn().Err(setErr).Str("key", key).Msg("production price cache: set failed")
			}
		}
	}
	return rows, nil
}

func (r *cachedProductionPriceRepo) Create(ctx context.Context, p *model.ProductionPrice) error {
	if err := r.ProductionPriceRepository.Create(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx, p.VendorUserID, p.ServiceID)
	return nil
}

func (r *cachedProductionPriceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := r.ProductionPriceRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.ProductionPriceRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, existing.VendorUserID, existing.ServiceID)
	return nil
}

// invalidate always reaches Redis, even with the breaker open.
func (r *cachedProductionPriceRepo) invalidate(ctx context.Context, vendorID uuid.UUID, serviceID string) {
	key := productionPriceVersionKey(vendorID, serviceID)
	if err := r.rdb.Incr(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("production price cache: invalidate failed")
	}
}

package router

import (
	"time"

	"github.com/ca-la/bin-sub002/internal/config"
	"github.com/ca-la/bin-sub002/internal/infra"
	"github.com/ca-la/bin-sub002/internal/repository"
	"github.com/ca-la/bin-sub002/internal/service"
	"github.com/ca-la/bin-sub002/internal/worker"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App holds the services and background components shared by the HTTP
// router and the worker pool.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
type App struct {
	Pricing          service.PricingService
	ProductionPrices service.ProductionPriceService
	Quotes           service.QuoteService

	Dispatcher  *worker.Dispatcher
	DLQ         *worker.RedisDLQ
	QuoteWorker *worker.QuoteWorker
	Sweeper     worker.QuoteSweeperConfig

	// PriceCacheCB guards the Redis price cache; reported by /health.
	PriceCacheCB *infra.CircuitBreaker
}

// Wire builds every dependency from the database and Redis clients.
func Wire(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	priceCacheCB := infra.NewCircuitBreaker(5, 30*time.Second)

	// ── Repositories ─────────────────────────────────────────────────────────
	designRepo := repository.NewDesignRepository(db)
	optionRepo := repository.NewSelectedOptionRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	designServiceRepo := repository.NewDesignServiceRepository(db)
	// Pricing reads partner prices straight from the database; the cache
	// only serves the price-table admin endpoints.
	priceRepo := repository.NewProductionPriceRepository(db)
	cachedPriceRepo := repository.NewCachedProductionPriceRepository(
		priceRepo,
		rdb,
		priceCacheCB,
		time.Duration(cfg.PriceCacheTTLMinutes)*time.Minute,
	)
	quoteRepo := repository.NewPricingQuoteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)
	dlq := worker.NewRedisDLQ(rdb)

	pricingSvc := service.NewPricingService(designRepo, optionRepo, sectionRepo, designServiceRepo, priceRepo)
	productionPriceSvc := service.NewProductionPriceService(cachedPriceRepo)
	quoteSvc := service.NewQuoteService(quoteRepo, pricingSvc, dispatcher)

	// ── Workers ──────────────────────────────────────────────────────────────
	quoteWorker := worker.NewQuoteWorker(quoteRepo, pricingSvc, dlq, nil, worker.QuoteWorkerConfig{
		StoragePath: cfg.QuoteStoragePath,
		CompanyName: cfg.CompanyName,
		MaxAttempts: cfg.QuoteMaxAttempts,
	})

	return &App{
		Pricing:          pricingSvc,
		ProductionPrices: productionPriceSvc,
		Quotes:           quoteSvc,
		Dispatcher:       dispatcher,
		DLQ:              dlq,
		QuoteWorker:      quoteWorker,
		Sweeper: worker.QuoteSweeperConfig{
			Quotes:     quoteRepo,
			Dispatcher: dispatcher,
			DLQ:        dlq,
			StaleAfter: time.Duration(cfg.QuoteStaleMinutes) * time.Minute,
			MaxSweeps:  cfg.QuoteMaxAttempts,
		},
		PriceCacheCB: priceCacheCB,
	}
}

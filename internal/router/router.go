package router

import (
	"time"

	"github.com/ca-la/bin-sub002/internal/config"
	"github.com/ca-la/bin-sub002/internal/handler"
	"github.com/ca-la/bin-sub002/internal/middleware"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New returns a configured Gin engine serving app.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, app *App) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()...))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter("api", cfg.RateLimit, time.Minute))

	// Rendering endpoints compute the whole table and build a file.
	heavyLimiter := middleware.RateLimiter("render", 30, time.Minute)

	// ── Handlers ─────────────────────────────────────────────────────────────
	pricingH := handler.NewPricingHandler(app.Pricing)
	quotesH := handler.NewQuotesHandler(app.Quotes, app.Pricing)
	pricesH := handler.NewProductionPricesHandler(app.ProductionPrices)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, app.PriceCacheCB, app.DLQ))

	// Protected routes
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		designs := v1.Group("/product-designs/:designId/pricing")
		{
			// Owner or admin; the handler narrows the response by role.
			designs.GET("", pricingH.GetPricing)
			designs.GET("/export", heavyLimiter, pricingH.ExportPricing)
			designs.POST("/quotes", heavyLimiter, quotesH.RequestQuote)

			override := designs.Group("/override", middleware.RequireRole(middleware.RoleAdmin))
			{
				override.PUT("", pricingH.SetOverride)
				override.DELETE("", pricingH.ClearOverride)
			}
		}

		v1.GET("/pricing-quotes/:id", quotesH.GetQuote)
		v1.GET("/pricing-quotes/:id/pdf", quotesH.DownloadPDF)

		// Partners may read their own price table; writes are admin only.
		v1.GET("/partners/:vendorId/production-prices", pricesH.List)
		v1.POST("/partners/:vendorId/production-prices", middleware.RequireRole(middleware.RoleAdmin), pricesH.Create)
		v1.DELETE("/production-prices/:id", middleware.RequireRole(middleware.RoleAdmin), pricesH.Delete)
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

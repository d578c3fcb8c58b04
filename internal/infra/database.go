package infra

import (
	"fmt"

	"github.com/ca-la/bin-sub002/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection and applies the idempotent schema
// patches the pricing queries rely on. Table DDL itself is owned by the
// platform's migrations, not by this service.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}
	return db, nil
}

// applySchemaPatches runs idempotent DDL that GORM tags cannot express.
// Each statement is guarded so re-running on a patched DB is a no-op, and
// skipped when the table does not exist yet.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// One tier per threshold: duplicate rows would make tier selection ambiguous.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'production_prices')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_production_prices_tier') THEN
		    CREATE UNIQUE INDEX idx_production_prices_tier
		        ON production_prices (vendor_user_id, service_id, complexity, minimum_units);
		  END IF;
		END $$`,
		// Sweeper query: pending quotes ordered by age.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'pricing_quotes')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pricing_quotes_pending') THEN
		    CREATE INDEX idx_pricing_quotes_pending
		        ON pricing_quotes (updated_at)
		        WHERE status = 'pending';
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations creates the tables for integration tests, then applies the
// schema patches.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

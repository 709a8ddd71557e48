package infra

import (
	"fmt"

	"gasolinera/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection with a tuned pool. Schema setup is
// a separate, explicit step (RunMigrations).
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
	return db, nil
}

// RunMigrations creates the schema. Also used by the integration test suite
// against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.TipoCombustible{},
		&model.InventarioCombustible{},
		&model.Pipa{},
		&model.Producto{},
		&model.Cliente{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.VentaCombustible{},
		&model.DetalleVentaCombustible{},
		&model.Usuario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Cascade sweeps and balance reads scan (tipo, fecha, id) — cover the id
		// tie-breaker explicitly.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_inventario_tipo_fecha_id') THEN
		    CREATE INDEX idx_inventario_tipo_fecha_id
		        ON inventario_combustible (tipo_combustible_id, fecha, id);
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}

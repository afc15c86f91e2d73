package infra

import (
	"fmt"

	"cobranza/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial indexes and the like).
//
// TranslateError is on so that a unique-violation on caja_diaria.doc_id comes
// back as gorm.ErrDuplicatedKey — the repository layer depends on that to map
// the deterministic-key collision to its domain error.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
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

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.ClienteDisponible{},
		&model.Prestamo{},
		&model.Movimiento{},
		&model.CajaDiaria{},
		&model.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle on its
// own. Each statement uses IF NOT EXISTS semantics so re-running on an
// already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the sweep's "which days already closed" lookups.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_caja_diaria_cierres') THEN
		    CREATE INDEX idx_caja_diaria_cierres
		        ON caja_diaria (admin, fecha_operacional)
		        WHERE tipo = 'cierre';
		  END IF;
		END $$`,
		// Audit log is append-only; index the common "history of one doc" query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_audit_logs_ref') THEN
		    CREATE INDEX idx_audit_logs_ref ON audit_logs (ref, created_at DESC);
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

// RunMigrations applies the schema for integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.ClienteDisponible{},
		&model.Prestamo{},
		&model.Movimiento{},
		&model.CajaDiaria{},
		&model.AuditLog{},
	); err != nil {
		return err
	}
	return applySchemaPatches(db)
}

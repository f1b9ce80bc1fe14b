package infra

import (
	"fmt"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes).
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates / updates the full schema. Shared with the
// integration test harness so containers start from the same DDL.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.MasaProduccion{},
		&model.OrdenMasaRelacion{},
		&model.ProgresoFase{},
		&model.ProductoMasa{},
		&model.IngredienteMasa{},
		&model.TipoMasaCatalogo{},
		&model.TipoHorno{},
		&model.ProgramaHorneo{},
		&model.MaquinaFormado{},
		&model.EspecificacionFormado{},
		&model.RegistroFormado{},
		&model.RegistroFermentacion{},
		&model.RegistroHorneado{},
		&model.NotificacionEmpaque{},
		&model.ConfiguracionSistema{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// partial index for the notification retry cron query
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'notificaciones_empaque')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_notificaciones_pendientes') THEN
		    CREATE INDEX idx_notificaciones_pendientes
		        ON notificaciones_empaque (created_at)
		        WHERE estado_envio = 'PENDIENTE';
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

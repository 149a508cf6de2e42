package cmd

import (
	"fmt"
	"time"

	"ordering/internal/adapters/out/postgres"
	"ordering/internal/pkg/logger"

	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// OpenDatabase connects to the configured store and migrates the schema when
// DB_AUTO_MIGRATE is set.
func OpenDatabase(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		dialector = pgdriver.Open(cfg.PostgresDSN())
	}

	gormLog := gormLogger.New(
		zap.NewStdLog(log.SugaredLogger.Desugar()),
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == DriverSQLite {
		// One writer at a time; concurrent transactions would fail with SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.DBAutoMigrate {
		if err = postgres.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		log.Info("schema migrated", "driver", cfg.DBDriver)
	}
	return db, nil
}

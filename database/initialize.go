package database

import (
	"context"
	"fmt"

	"todo-service/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeDatabase opens the configured database and, when enabled, runs
// the migrations found in cfg.MigrationsDir.
func InitializeDatabase(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dbConn, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(dbConn, cfg.MigrationsDir); err != nil {
			dbConn.Close()
			return nil, err
		}
	}

	logger.Info("Database initialized successfully", zap.String("driver", cfg.Driver))
	return dbConn, nil
}

// Connect opens a connection pool for the configured driver
func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		dbConn := db.GetDBConnection(db.DatabaseConfig{
			DRIVER: cfg.Driver,
			DB:     cfg.DSN,
		})
		// SQLite serializes writers; a single connection avoids SQLITE_BUSY
		// between concurrent requests.
		dbConn.SetMaxOpenConns(1)
		return dbConn, nil
	case config.DriverPostgres:
		dbConn, err := sqlx.Connect(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return dbConn, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate applies pending migrations from dir. The go-utils runner binds
// "?" placeholders, which PostgreSQL rejects, so postgres connections get
// the bundled schema instead and dir is ignored.
func Migrate(dbConn *sqlx.DB, dir string) error {
	if dbConn.DriverName() == "postgres" {
		logger.Info("Applying bundled postgres schema", zap.String("ignored_dir", dir))
		if err := ApplySchema(context.Background(), dbConn); err != nil {
			logger.Error("Error while applying schema", zap.Error(err))
			return fmt.Errorf("apply postgres schema: %w", err)
		}
		return nil
	}

	if err := migrations.Migrate(dbConn, dir); err != nil {
		logger.Error("Error while running migration", zap.Error(err), zap.String("dir", dir))
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}

// CreateMigration writes a new, empty migration file into dir
func CreateMigration(name, dir string) {
	migrations.CreateMigration(&name, &dir)
}

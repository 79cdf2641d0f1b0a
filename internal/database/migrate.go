package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/allisson/modelgate/migrations"
)

// MigrationsDir returns the embedded migrations directory for a driver.
func MigrationsDir(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgresql", nil
	case DriverMySQL:
		return "mysql", nil
	case DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// Migrate applies every pending migration for cfg.Driver.
//
// It opens a dedicated connection because closing the migrate instance also
// closes the underlying *sql.DB. Returns nil when there is nothing to apply.
func Migrate(cfg Config) error {
	dir, err := MigrationsDir(cfg.Driver)
	if err != nil {
		return err
	}

	db, err := Connect(cfg)
	if err != nil {
		return err
	}

	var driver migratedb.Driver
	switch cfg.Driver {
	case DriverPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case DriverMySQL:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	case DriverSQLite:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	}
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("failed to open migrations source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.Driver, driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()

	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", upErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("failed to close migrations source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close migrate database: %w", dbErr)
	}
	return nil
}

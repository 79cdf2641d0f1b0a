package commands

import (
	"fmt"
	"log/slog"

	"github.com/allisson/modelgate/internal/database"
)

// RunMigrations applies the embedded migrations for the configured driver.
// Returns nil when the schema is already current.
func RunMigrations(logger *slog.Logger, cfg database.Config) error {
	logger.Info("running database migrations",
		slog.String("driver", cfg.Driver),
	)

	if err := database.Migrate(cfg); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

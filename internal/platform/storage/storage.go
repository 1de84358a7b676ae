// Package storage opens the configured database backend.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/produce_settlement_app/internal/core/ports/repositories"
	"github.com/SscSPs/produce_settlement_app/internal/platform/config"
	"github.com/SscSPs/produce_settlement_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/produce_settlement_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/produce_settlement_app/pkg/database"
)

// Open connects the database named by cfg.DBDriver and returns its repositories
// together with a function that releases the connection.
// Postgres migrations are applied before the pool is opened.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func(), error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return repositories.RepositoryProvider{}, nil, err
		}
		logger.Info("SQLite store opened", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(store), func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing SQLite store", slog.String("error", err.Error()))
			}
		}, nil
	case config.DriverPostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return repositories.RepositoryProvider{}, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return repositories.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established")
		return pgsql.NewRepositoryProvider(pool), pool.Close, nil
	}
	return repositories.RepositoryProvider{}, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

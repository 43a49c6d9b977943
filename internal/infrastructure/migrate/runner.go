// Package migrate applies the SQL schema in migrations/ with golang-migrate.
package migrate

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file source for migrations
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Config struct {
	DatabaseURL    string
	MigrationsPath string
}

type Runner struct {
	config *Config
	logger *zap.Logger
}

func NewRunner(config *Config, logger *zap.Logger) *Runner {
	return &Runner{
		config: config,
		logger: logger,
	}
}

// withMigrate opens a dedicated connection for the duration of fn.
func (r *Runner) withMigrate(fn func(m *migrate.Migrate) error) error {
	db, err := sql.Open("postgres", r.config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			r.logger.Warn("Failed to close migration connection", zap.Error(closeErr))
		}
	}()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+r.config.MigrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return fn(m)
}

// Up applies every pending migration and fails on a dirty schema.
func (r *Runner) Up() error {
	return r.withMigrate(func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return r.checkClean(m)
	})
}

// Steps moves n migrations forward, or back when n is negative.
func (r *Runner) Steps(n int) error {
	return r.withMigrate(func(m *migrate.Migrate) error {
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to migrate %d steps: %w", n, err)
		}
		return r.checkClean(m)
	})
}

// Version returns the applied schema version; 0 means nothing applied yet.
func (r *Runner) Version() (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := r.withMigrate(func(m *migrate.Migrate) error {
		var err error
		version, dirty, err = m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			version, dirty = 0, false
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		return nil
	})
	return version, dirty, err
}

func (r *Runner) checkClean(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		r.logger.Info("Schema has no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", version)
	}

	r.logger.Info("Schema migrated", zap.Uint("version", version))
	return nil
}

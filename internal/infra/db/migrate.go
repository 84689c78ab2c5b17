package db

import (
	"errors"
	"log/slog"

	"wedding-booking/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies pending up migrations. An up-to-date schema is not an error.
func Migrate(migrationsPath string, cfg config.DBConfig, logger *slog.Logger) error {
	m, err := migrate.New(migrationsPath, cfg.BuildDSN())
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("schema up to date")
			return nil
		}
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	logger.Info("migrations applied", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}

// Rollback reverts the given number of migrations.
func Rollback(migrationsPath string, cfg config.DBConfig, steps int) error {
	m, err := migrate.New(migrationsPath, cfg.BuildDSN())
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Version reports the applied schema version. A database without migrations reports version 0.
func Version(migrationsPath string, cfg config.DBConfig) (uint, bool, error) {
	m, err := migrate.New(migrationsPath, cfg.BuildDSN())
	if err != nil {
		return 0, false, err
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

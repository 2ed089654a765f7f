package migrations

import (
	"embed"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

type Migrator struct {
	logger   *zap.Logger
	migrator *migrate.Migrate
}

// New opens the embedded migrations against the database at dsn.
func New(logger *zap.Logger, dsn string) (*Migrator, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL(dsn))
	if err != nil {
		return nil, err
	}

	return &Migrator{
		logger:   logger,
		migrator: m,
	}, nil
}

// databaseURL rewrites a postgres:// DSN to the scheme registered by the pgx/v5 driver.
func databaseURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}

func (m *Migrator) Up() error {
	if err := m.fix(); err != nil {
		return err
	}

	m.logger.Info("migrating database up")
	if err := m.migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	m.logger.Info("database migration completed")
	return nil
}

func (m *Migrator) Down() error {
	if err := m.fix(); err != nil {
		return err
	}

	m.logger.Info("migrating database down one step")
	if err := m.migrator.Steps(-1); err != nil {
		return err
	}

	m.logger.Info("database migration completed")
	return nil
}

func (m *Migrator) fix() error {
	version, dirty, err := m.migrator.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	}
	if !dirty {
		return nil
	}

	m.logger.Sugar().Warnf("database is dirty at version %d, forcing", version)
	return m.migrator.Force(int(version))
}

func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrator.Close()
	return errors.Join(sourceErr, dbErr)
}

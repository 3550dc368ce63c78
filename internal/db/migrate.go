package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func migrationsSource() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// MigrateUp applies all pending migrations. An up-to-date schema is not an
// error.
func MigrateUp(params NewDBPoolParams) error {
	m, err := newMigrate(params)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration version: %w", err)
	}
	log.Infof("db schema at version %d (dirty: %t)", version, dirty)
	return nil
}

// MigrateDown rolls back every migration. Used by tests.
func MigrateDown(params NewDBPoolParams) error {
	m, err := newMigrate(params)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

func newMigrate(params NewDBPoolParams) (*migrate.Migrate, error) {
	src, err := migrationsSource()
	if err != nil {
		return nil, fmt.Errorf("open migrations source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, params.ConnString("pgx5"))
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Warnf("close migrations source: %s", srcErr)
	}
	if dbErr != nil {
		log.Warnf("close migrations db: %s", dbErr)
	}
}

type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...any) {
	log.Debugf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return log.IsLevelEnabled(log.TraceLevel)
}

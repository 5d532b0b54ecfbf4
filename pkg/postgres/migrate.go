package postgres

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrations locates a migration set. FS takes precedence; otherwise URL is a golang-migrate
// source URL such as "file://migrations".
type Migrations struct {
	FS  fs.FS
	URL string
}

func (s Migrations) open(dsn string) (*migrate.Migrate, error) {
	if s.FS != nil {
		src, err := iofs.New(s.FS, ".")
		if err != nil {
			return nil, fmt.Errorf("postgres: open embedded migrations: %w", err)
		}
		m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
		if err != nil {
			return nil, fmt.Errorf("postgres: create migrator: %w", err)
		}
		return m, nil
	}
	if s.URL == "" {
		return nil, errors.New("postgres: no migration source configured")
	}
	m, err := migrate.New(s.URL, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: create migrator: %w", err)
	}
	return m, nil
}

// MigrateUp applies all pending migrations. Having nothing to apply is not an error.
func MigrateUp(dsn string, src Migrations) error {
	return withMigrator(dsn, src, "up", (*migrate.Migrate).Up)
}

// MigrateDown rolls back every applied migration.
func MigrateDown(dsn string, src Migrations) error {
	return withMigrator(dsn, src, "down", (*migrate.Migrate).Down)
}

// MigrationVersion reports the applied schema version. ok is false on an empty database.
func MigrationVersion(dsn string, src Migrations) (version uint, dirty, ok bool, err error) {
	m, err := src.open(dsn)
	if err != nil {
		return 0, false, false, err
	}
	defer m.Close()

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("postgres: read migration version: %w", err)
	}
	return version, dirty, true, nil
}

func withMigrator(dsn string, src Migrations, direction string, run func(*migrate.Migrate) error) error {
	m, err := src.open(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := run(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations %s: %w", direction, err)
	}
	return nil
}

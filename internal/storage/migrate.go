package storage

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Schema files for the decks, records and settings tables.
//
//go:embed migrations/*.sql
var schemaFS embed.FS

// sqliteURL turns a file path into a migrate database URL. Windows drive
// paths get a leading slash.
func sqliteURL(path string) string {
	p := filepath.ToSlash(path)
	if filepath.IsAbs(path) && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "sqlite://" + p
}

// withSchema runs fn against a migrate instance for the database at path.
func withSchema(path string, fn func(m *migrate.Migrate) error) (err error) {
	dir, err := fs.Sub(schemaFS, "migrations")
	if err != nil {
		return fmt.Errorf("embedded schema: %w", err)
	}
	src, err := iofs.New(dir, ".")
	if err != nil {
		return fmt.Errorf("schema source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, sqliteURL(path))
	if err != nil {
		return fmt.Errorf("open schema of %s: %w", path, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	return fn(m)
}

// MigrateSchema brings the database at path to the latest schema.
func MigrateSchema(path string) error {
	return withSchema(path, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("apply schema: %w", err)
		}
		return nil
	})
}

// schemaVersion reports the applied schema version. A fresh database is
// version 0.
func schemaVersion(path string) (version uint, dirty bool, err error) {
	err = withSchema(path, func(m *migrate.Migrate) error {
		var verr error
		version, dirty, verr = m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		return verr
	})
	return version, dirty, err
}

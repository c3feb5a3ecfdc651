package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file" // File source driver
)

// RunMigrations applies all pending up migrations using a database path,
// managing its own connection. migrate.ErrNoChange is not an error.
//
// Example:
//
//	err := db.RunMigrations("dreamforge.sqlite", "file://db/migrations")
func RunMigrations(dbPath, migrationsPath string) error {
	conn, err := OpenWithDefaults(dbPath)
	if err != nil {
		return fmt.Errorf("db: open for migration: %w", err)
	}
	// The migrator takes ownership of conn and closes it with m.Close.
	return MigrateUp(conn, migrationsPath)
}

// MigrateUp applies all pending up migrations.
//
// IMPORTANT: this function takes ownership of the database connection and
// closes it when complete. Open a fresh connection for normal operation
// afterwards.
func MigrateUp(conn *sql.DB, migrationsPath string) error {
	m, err := newMigrator(conn, migrationsPath)
	if err != nil {
		return fmt.Errorf("db: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("db: apply migrations: %w", err)
	}
	return nil
}

// MigrationVersion returns the current schema version and dirty state for
// a database path. Version 0 means no migrations applied yet. A dirty
// state means a migration failed partway and needs manual repair.
func MigrationVersion(dbPath, migrationsPath string) (uint, bool, error) {
	conn, err := OpenWithDefaults(dbPath)
	if err != nil {
		return 0, false, fmt.Errorf("db: open for version check: %w", err)
	}

	m, err := newMigrator(conn, migrationsPath)
	if err != nil {
		conn.Close()
		return 0, false, fmt.Errorf("db: create migrator: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("db: get migration version: %w", err)
	}
	return version, dirty, nil
}

func newMigrator(conn *sql.DB, migrationsPath string) (*migrate.Migrate, error) {
	if conn == nil {
		return nil, errors.New("database connection is required")
	}
	if migrationsPath == "" {
		return nil, errors.New("migrations path is required")
	}

	driver, err := sqlite.WithInstance(conn, &sqlite.Config{DatabaseName: "main"})
	if err != nil {
		return nil, fmt.Errorf("create sqlite driver: %w", err)
	}

	return migrate.NewWithDatabaseInstance(migrationsPath, "sqlite", driver)
}

package sqlite

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/vault/*.sql
var vaultMigrationsFS embed.FS

//go:embed migrations/registry/*.sql
var registryMigrationsFS embed.FS

// RunVaultMigrations applies all pending vault-database migrations embedded
// in the binary. Safe to call on every open; already-applied migrations are
// skipped.
func RunVaultMigrations(db *sql.DB) error {
	return runMigrations(db, vaultMigrationsFS, "migrations/vault")
}

// RunRegistryMigrations applies all pending registry-database migrations.
func RunRegistryMigrations(db *sql.DB) error {
	return runMigrations(db, registryMigrationsFS, "migrations/registry")
}

func runMigrations(db *sql.DB, fs embed.FS, dir string) error {
	sourceDriver, err := iofs.New(fs, dir)
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

package main

import (
	"fmt"

	sqliteadapter "github.com/agentauth/agentauth/internal/adapter/driven/sqlite"
	"github.com/agentauth/agentauth/internal/application"
	"github.com/agentauth/agentauth/internal/config"
	"github.com/agentauth/agentauth/internal/domain/model"
)

// openVault opens the existing vault database and wires the vault service.
// The vault file's existence is the sole is-initialized signal, so this
// never creates the file; a missing vault maps to ErrVaultNotInitialized.
func openVault(cfg *config.Config) (*application.Vault, func(), error) {
	if !sqliteadapter.Exists(cfg.VaultPath) {
		return nil, nil, fmt.Errorf("%w: run 'agentauth init' first", model.ErrVaultNotInitialized)
	}

	db, err := sqliteadapter.OpenExisting(cfg.VaultPath)
	if err != nil {
		return nil, nil, err
	}
	if err := sqliteadapter.RunVaultMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	vault := application.NewVault(sqliteadapter.NewVaultRepo(db))
	return vault, func() { _ = db.Close() }, nil
}

// createVault creates the vault database file; only the init command calls
// this.
func createVault(cfg *config.Config) (*application.Vault, func(), error) {
	if err := cfg.EnsureHome(); err != nil {
		return nil, nil, err
	}

	db, err := sqliteadapter.NewDB(cfg.VaultPath)
	if err != nil {
		return nil, nil, err
	}
	if err := sqliteadapter.RunVaultMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	vault := application.NewVault(sqliteadapter.NewVaultRepo(db))
	return vault, func() { _ = db.Close() }, nil
}

// registry bundles the services backed by the agent registry database.
type registry struct {
	agents *application.AgentService
	audit  *sqliteadapter.AuditRepo
	close  func()
}

// openRegistry opens (creating on demand) the registry database. Unlike the
// vault, the registry carries no initialization semantics, so creating it
// lazily is harmless.
func openRegistry(cfg *config.Config) (*registry, error) {
	if err := cfg.EnsureHome(); err != nil {
		return nil, err
	}

	db, err := sqliteadapter.NewDB(cfg.RegistryPath)
	if err != nil {
		return nil, err
	}
	if err := sqliteadapter.RunRegistryMigrations(db.Writer); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &registry{
		agents: application.NewAgentService(sqliteadapter.NewAgentRepo(db)),
		audit:  sqliteadapter.NewAuditRepo(db),
		close:  func() { _ = db.Close() },
	}, nil
}

// Package config loads application configuration from AGENTAUTH_-prefixed
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the paths and settings shared by every front end. The vault
// and registry are separate database files: the vault file's existence is
// the initialization signal and must not be created as a side effect of
// registry operations.
type Config struct {
	// Home is the directory holding both database files. Defaults to
	// ~/.agentauth when unset.
	Home string `env:"HOME"`

	// VaultPath overrides the vault database location (default
	// <home>/vault.db).
	VaultPath string `env:"VAULT_PATH"`

	// RegistryPath overrides the agent registry database location (default
	// <home>/agents.db).
	RegistryPath string `env:"REGISTRY_PATH"`

	// KeyringService is the OS keyring service name under which the master
	// password may optionally be stored.
	KeyringService string `env:"KEYRING_SERVICE" envDefault:"agentauth"`
}

// Load reads configuration from the environment and resolves defaults.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "AGENTAUTH_"}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.Home = filepath.Join(home, ".agentauth")
	}
	if cfg.VaultPath == "" {
		cfg.VaultPath = filepath.Join(cfg.Home, "vault.db")
	}
	if cfg.RegistryPath == "" {
		cfg.RegistryPath = filepath.Join(cfg.Home, "agents.db")
	}

	return &cfg, nil
}

// EnsureHome creates the data directory with owner-only permissions.
func (c *Config) EnsureHome() error {
	if err := os.MkdirAll(c.Home, 0o700); err != nil {
		return fmt.Errorf("create data directory %s: %w", c.Home, err)
	}
	return nil
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AGENTAUTH_HOME", "")
	t.Setenv("AGENTAUTH_VAULT_PATH", "")
	t.Setenv("AGENTAUTH_REGISTRY_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Home)
	assert.Equal(t, filepath.Join(cfg.Home, "vault.db"), cfg.VaultPath)
	assert.Equal(t, filepath.Join(cfg.Home, "agents.db"), cfg.RegistryPath)
	assert.Equal(t, "agentauth", cfg.KeyringService)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AGENTAUTH_HOME", "/data/agentauth")
	t.Setenv("AGENTAUTH_VAULT_PATH", "/secrets/vault.db")
	t.Setenv("AGENTAUTH_KEYRING_SERVICE", "agentauth-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/agentauth", cfg.Home)
	assert.Equal(t, "/secrets/vault.db", cfg.VaultPath)
	assert.Equal(t, filepath.Join("/data/agentauth", "agents.db"), cfg.RegistryPath,
		"registry path derives from home when not overridden")
	assert.Equal(t, "agentauth-test", cfg.KeyringService)
}

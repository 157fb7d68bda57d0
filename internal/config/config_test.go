package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigVaultUnreachableFails(t *testing.T) {
	t.Setenv("RESUMELENS_AI_APIKEY", "env-api-key")
	t.Setenv("RESUMELENS_VAULT_ENABLED", "true")
	t.Setenv("RESUMELENS_VAULT_ADDRESS", "http://127.0.0.1:1")
	t.Setenv("RESUMELENS_VAULT_TOKEN", "test-token")

	config, err := LoadConfig()

	require.Error(t, err, "unreachable Vault must fail configuration loading")
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "Vault")
}

func TestLoadConfigVaultDisabledSkipsVault(t *testing.T) {
	t.Setenv("RESUMELENS_AI_APIKEY", "env-api-key")
	t.Setenv("RESUMELENS_VAULT_ENABLED", "false")
	// Address points nowhere; a disabled Vault must never be contacted.
	t.Setenv("RESUMELENS_VAULT_ADDRESS", "http://127.0.0.1:1")

	config, err := LoadConfig()

	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, "env-api-key", config.AI.APIKey)
	assert.False(t, config.Vault.Enabled)
}

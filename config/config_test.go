package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
)

var keys = []string{
	"APTOS_AGENT_NAME", "APTOS_AGENT_VERSION", "APTOS_NETWORK", "APTOS_ACCOUNT_ADDRESS",
	"LOG_LEVEL", "ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
}

// clearEnv blanks every key for the duration of the test; empty values
// fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultName, cfg.Name)
	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, DefaultNetwork, cfg.Network)
	assert.Equal(t, DefaultAddress, cfg.AccountAddress)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, DefaultModel, cfg.AnthropicModel)
	assert.Empty(t, cfg.AnthropicKey)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APTOS_AGENT_NAME", "kit")
	t.Setenv("APTOS_NETWORK", "Testnet")
	t.Setenv("APTOS_ACCOUNT_ADDRESS", "0xabc")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "kit", cfg.Name)
	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, "0xabc", cfg.AccountAddress)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "sk-test", cfg.AnthropicKey)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"log level", "LOG_LEVEL", "loud"},
		{"network", "APTOS_NETWORK", "moonnet"},
		{"address", "APTOS_ACCOUNT_ADDRESS", "alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}

	clearEnv(t)
	t.Setenv("APTOS_ACCOUNT_ADDRESS", "alice")
	_, err := FromEnv()
	assert.True(t, errors.Is(err, runtime.ErrInvalidAddress))
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even to
	// the empty string, so these two are unset for the test.
	os.Unsetenv("APTOS_AGENT_VERSION")
	os.Unsetenv("APTOS_NETWORK")
	t.Cleanup(func() {
		os.Unsetenv("APTOS_AGENT_VERSION")
		os.Unsetenv("APTOS_NETWORK")
	})

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("APTOS_AGENT_VERSION=2.0.0\nAPTOS_NETWORK=devnet\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.Version)
	assert.Equal(t, "devnet", cfg.Network)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultName, cfg.Name)
}

func TestLogger(t *testing.T) {
	cfg := Config{Name: "kit", LogLevel: log.WarnLevel}
	l := cfg.Logger()
	require.NotNil(t, l)
	assert.Equal(t, log.WarnLevel, l.GetLevel())
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 0.0001, cfg.Rotation.LeverageFraction)
	assert.Equal(t, 900*time.Second, cfg.Rotation.UpdateInterval)
	assert.Equal(t, 10*time.Second, cfg.Rotation.Cooldown)
	assert.Equal(t, 24*time.Hour, cfg.Rotation.CooldownLookback)
	assert.Equal(t, []string{"XNY"}, cfg.Rotation.Blacklist)
	assert.False(t, cfg.Rotation.AllowUSDC)
	assert.Equal(t, "https://www.binance.com/fapi/v1/topMovers", cfg.Signal.URL)
	assert.Equal(t, 5*time.Second, cfg.Signal.Timeout)
	assert.Equal(t, "x-TBzTen1X", cfg.Exchange.ClientOrderPrefix)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
rotation:
  update_interval: 60s
  blacklist: ["XNY", "LUNA"]
  allow_usdc: true
exchange:
  api_key: from-file
`)
	t.Setenv("BINANCE_API_KEY", "from-env")
	t.Setenv("ROTATION_COOLDOWN", "30s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.Rotation.UpdateInterval)
	assert.Equal(t, 30*time.Second, cfg.Rotation.Cooldown)
	assert.Equal(t, []string{"XNY", "LUNA"}, cfg.Rotation.Blacklist)
	assert.True(t, cfg.Rotation.AllowUSDC)
	assert.Equal(t, "from-env", cfg.Exchange.APIKey)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
rotation:
  leverage_fraction: 0
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leverage_fraction")
}

func TestDumpMasksSecrets(t *testing.T) {
	t.Setenv("BINANCE_API_SECRET", "super-secret")
	cfg, err := Load("")
	require.NoError(t, err)

	out, err := cfg.Dump()
	require.NoError(t, err)
	assert.NotContains(t, out, "super-secret")
	assert.Contains(t, out, masked)
	assert.Contains(t, out, "update_interval")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"FINDASH_DATABASE", "FINDASH_EXPORTS_DIR", "FINDASH_REPORTS_DIR", "FINDASH_CURRENCY",
	"FINDASH_PORTFOLIO", "FINDASH_LOG_LEVEL", "FINDASH_LOG_PRETTY", "FINDASH_ALPHAVANTAGE_KEY",
	"ALPHAVANTAGE_API_KEY",
}

// clearEnv unsets every variable read by Load for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "") // restores the original value at cleanup
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("FINDASH_DATABASE", "/var/lib/findash/data.db")
	t.Setenv("FINDASH_CURRENCY", "eur")
	t.Setenv("FINDASH_PORTFOLIO", "ISA")
	t.Setenv("FINDASH_LOG_LEVEL", "DEBUG")
	t.Setenv("FINDASH_LOG_PRETTY", "true")
	t.Setenv("ALPHAVANTAGE_API_KEY", "demo")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/findash/data.db", cfg.DatabasePath)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "ISA", cfg.DefaultPortfolio)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, "demo", cfg.AlphaVantageKey)
	assert.Equal(t, "exports", cfg.ExportsDir)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("FINDASH_REPORTS_DIR=out\nFINDASH_PORTFOLIO=SIPP\n"), 0644))
	t.Setenv("FINDASH_PORTFOLIO", "ISA")

	cfg, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.ReportsDir)
	assert.Equal(t, "ISA", cfg.DefaultPortfolio, "the environment wins over the file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"FINDASH_CURRENCY":   "XXQ",
		"FINDASH_PORTFOLIO":  "A label far too long",
		"FINDASH_LOG_PRETTY": "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

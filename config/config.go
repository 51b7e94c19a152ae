// Package config loads the application settings from the environment.
//
// Settings are read from FINDASH_* environment variables, and from a .env file in the
// working directory if there is one. Variables already set in the environment win over the
// file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
)

// MaxPortfolioLength is the longest portfolio label the store accepts.
const MaxPortfolioLength = 15

// Config holds the application settings.
type Config struct {
	DatabasePath     string
	ExportsDir       string
	ReportsDir       string
	Currency         string
	DefaultPortfolio string
	LogLevel         string
	LogPretty        bool
	AlphaVantageKey  string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		DatabasePath:     "findash.db",
		ExportsDir:       "exports",
		ReportsDir:       "reports",
		Currency:         "GBP",
		DefaultPortfolio: "Shares",
		LogLevel:         "info",
	}
}

// Load reads the .env 'files' (".env" if none) and the environment.
//
// A missing .env file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("cannot load .env file: %w", err)
	}

	d := Default()
	cfg := Config{
		DatabasePath:     getEnv("FINDASH_DATABASE", d.DatabasePath),
		ExportsDir:       getEnv("FINDASH_EXPORTS_DIR", d.ExportsDir),
		ReportsDir:       getEnv("FINDASH_REPORTS_DIR", d.ReportsDir),
		Currency:         strings.ToUpper(getEnv("FINDASH_CURRENCY", d.Currency)),
		DefaultPortfolio: getEnv("FINDASH_PORTFOLIO", d.DefaultPortfolio),
		LogLevel:         strings.ToLower(getEnv("FINDASH_LOG_LEVEL", d.LogLevel)),
		AlphaVantageKey:  getEnv("FINDASH_ALPHAVANTAGE_KEY", os.Getenv("ALPHAVANTAGE_API_KEY")),
	}
	pretty, err := getEnvAsBool("FINDASH_LOG_PRETTY", d.LogPretty)
	if err != nil {
		return Config{}, err
	}
	cfg.LogPretty = pretty

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	if money.GetCurrency(c.Currency) == nil {
		return fmt.Errorf("unknown currency %q", c.Currency)
	}
	if n := utf8.RuneCountInString(c.DefaultPortfolio); n == 0 || n > MaxPortfolioLength {
		return fmt.Errorf("portfolio label %q must have 1 to %d characters", c.DefaultPortfolio, MaxPortfolioLength)
	}
	if c.DatabasePath == "" {
		return errors.New("database path is empty")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a fallback.
func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %s=%q: %w", key, value, err)
	}
	return b, nil
}

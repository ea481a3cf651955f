// Package config loads server configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted for STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendJira   = "jira"
)

// Confluence holds the scraper backend settings. The scraper is enabled
// only when BaseURL is set.
type Confluence struct {
	BaseURL       string
	SelectorsPath string
}

// Jira holds the credentials for the read-only Jira backend.
type Jira struct {
	BaseURL  string
	Username string
	Token    string
}

// Config is the resolved server configuration.
type Config struct {
	Port         string
	LogLevel     string
	CacheTTL     time.Duration
	StoreBackend string

	SyncLimit  int
	SyncWindow time.Duration

	Confluence Confluence
	Jira       Jira
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "3000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CacheTTL:     time.Duration(getEnvInt("CACHE_TTL_MINUTES", 5)) * time.Minute,
		StoreBackend: getEnv("STORE_BACKEND", BackendMemory),
		SyncLimit:    getEnvInt("SYNC_LIMIT_PER_MINUTE", 10),
		SyncWindow:   time.Minute,
		Confluence: Confluence{
			BaseURL:       os.Getenv("CONFLUENCE_BASE_URL"),
			SelectorsPath: getEnv("CONFLUENCE_SELECTORS_PATH", "config/selectors.yaml"),
		},
		Jira: Jira{
			BaseURL:  os.Getenv("JIRA_BASE_URL"),
			Username: os.Getenv("JIRA_USERNAME"),
			Token:    os.Getenv("JIRA_TOKEN"),
		},
	}

	if cfg.StoreBackend != BackendMemory && cfg.StoreBackend != BackendJira {
		return nil, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == BackendJira && cfg.Jira.BaseURL == "" {
		return nil, fmt.Errorf("config: STORE_BACKEND=jira requires JIRA_BASE_URL")
	}

	return cfg, nil
}

// ScraperEnabled reports whether the Confluence scraper should start.
func (c *Config) ScraperEnabled() bool {
	return c.Confluence.BaseURL != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.StoreBackend != BackendMemory {
		t.Errorf("StoreBackend = %q, want memory", cfg.StoreBackend)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if cfg.SyncLimit != 10 {
		t.Errorf("SyncLimit = %d, want 10", cfg.SyncLimit)
	}
	if cfg.ScraperEnabled() {
		t.Error("scraper should be disabled without CONFLUENCE_BASE_URL")
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CACHE_TTL_MINUTES", "30")
	t.Setenv("CONFLUENCE_BASE_URL", "https://wiki.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v, want 30m", cfg.CacheTTL)
	}
	if !cfg.ScraperEnabled() {
		t.Error("scraper should be enabled with CONFLUENCE_BASE_URL set")
	}
}

func TestLoad_NonNumericTTLFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL_MINUTES", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m fallback", cfg.CacheTTL)
	}
}

func TestLoad_UnknownBackendFails(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for unknown STORE_BACKEND")
	}
}

func TestLoad_JiraBackendRequiresBaseURL(t *testing.T) {
	t.Setenv("STORE_BACKEND", BackendJira)
	t.Setenv("JIRA_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail when jira backend has no base URL")
	}

	t.Setenv("JIRA_BASE_URL", "https://jira.example.com")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StoreBackend != BackendJira {
		t.Errorf("StoreBackend = %q, want jira", cfg.StoreBackend)
	}
}

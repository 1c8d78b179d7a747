package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8083" {
		t.Errorf("Port = %q, want 8083", cfg.Port)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.MaxHistoryEntries != 12 {
		t.Errorf("MaxHistoryEntries = %d, want 12", cfg.MaxHistoryEntries)
	}
	if cfg.SessionTimeout != 30*time.Minute {
		t.Errorf("SessionTimeout = %v, want 30m", cfg.SessionTimeout)
	}
	if cfg.OraclePrimaryProvider != "gemini" {
		t.Errorf("OraclePrimaryProvider = %q, want gemini", cfg.OraclePrimaryProvider)
	}
	if !cfg.SecurityEnabled {
		t.Error("SecurityEnabled should default to true")
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOP_K", "3")
	t.Setenv("SESSION_TIMEOUT", "10m")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("SECURITY_ENABLED", "false")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.TopK)
	}
	if cfg.SessionTimeout != 10*time.Minute {
		t.Errorf("SessionTimeout = %v, want 10m", cfg.SessionTimeout)
	}
	if cfg.RateLimitRequests != 5 {
		t.Errorf("RateLimitRequests = %d, want 5", cfg.RateLimitRequests)
	}
	if cfg.SecurityEnabled {
		t.Error("SECURITY_ENABLED=false not applied")
	}
	if !cfg.IsProduction() {
		t.Error("ENVIRONMENT=production not applied")
	}
	if !cfg.HasOracleProvider() {
		t.Error("HasOracleProvider should be true with GEMINI_API_KEY set")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TOP_K", "not-a-number")
	t.Setenv("SESSION_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TopK != 5 {
		t.Errorf("unparseable TOP_K should fall back to 5, got %d", cfg.TopK)
	}
	if cfg.SessionTimeout != 30*time.Minute {
		t.Errorf("unparseable SESSION_TIMEOUT should fall back to 30m, got %v", cfg.SessionTimeout)
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Port:                  "",
		KnowledgeBasePath:     "",
		DataDir:               "/data",
		TopK:                  0,
		MaxHistoryEntries:     12,
		SessionTimeout:        time.Minute,
		RateLimitRequests:     30,
		RateLimitWindow:       time.Minute,
		BlacklistThreshold:    3,
		OraclePrimaryProvider: "other",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"PORT", "KNOWLEDGE_BASE_PATH", "TOP_K", "ORACLE_PRIMARY_PROVIDER"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error should mention %s: %v", want, err)
		}
	}
}

func TestAnalyticsDBPath(t *testing.T) {
	t.Parallel()

	cfg := &Config{DataDir: "/data"}
	if got := cfg.AnalyticsDBPath(); got != "/data/analytics.db" {
		t.Errorf("AnalyticsDBPath = %q", got)
	}
}

package config

import (
	"os"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != "3000" {
		t.Errorf("Expected default port 3000, got %s", cfg.Server.Port)
	}
	if cfg.Backend.URL != "http://127.0.0.1:8000" {
		t.Errorf("Expected default backend URL, got %s", cfg.Backend.URL)
	}
	if cfg.Backend.UseMockData {
		t.Error("Mock data should be disabled by default")
	}
	if !cfg.RateLimit.Enabled {
		t.Error("Rate limiting should be enabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("BACKEND_URL", "http://backend.internal:9000")
	os.Setenv("USE_MOCK_DATA", "true")
	os.Setenv("PORT", "8080")
	defer func() {
		os.Unsetenv("BACKEND_URL")
		os.Unsetenv("USE_MOCK_DATA")
		os.Unsetenv("PORT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backend.URL != "http://backend.internal:9000" {
		t.Errorf("Expected env backend URL, got %s", cfg.Backend.URL)
	}
	if !cfg.Backend.UseMockData {
		t.Error("Expected mock data enabled from env")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	os.Setenv("RATE_LIMIT_RPS", "not-a-number")
	defer os.Unsetenv("RATE_LIMIT_RPS")

	cfg := LoadOrDefault()
	if cfg.RateLimit.RequestsPerSecond != 100 {
		t.Errorf("Expected default RPS on bad env, got %d", cfg.RateLimit.RequestsPerSecond)
	}
}

package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "dev" {
		t.Fatalf("expected App.Env to be dev, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Catalog.BaseURL != "https://fakestoreapi.com" {
		t.Fatalf("unexpected catalog base url %q", cfg.Catalog.BaseURL)
	}
	if got := cfg.Notification.Duration; got != 3*time.Second {
		t.Fatalf("expected notification duration 3s, got %v", got)
	}
	if got := cfg.Dialog.ConfirmDelay; got != 2*time.Second {
		t.Fatalf("expected confirm delay 2s, got %v", got)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogBaseURL, "http://catalog.test")
	t.Setenv(EnvNotificationDuration, "1500ms")
	t.Setenv(EnvDialogConfirmDelay, "0s")
	t.Setenv(EnvCORSAllowedOriginList, "http://a.test,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Catalog.BaseURL != "http://catalog.test" {
		t.Fatalf("unexpected catalog base url %q", cfg.Catalog.BaseURL)
	}
	if cfg.Notification.Duration != 1500*time.Millisecond {
		t.Fatalf("unexpected notification duration %v", cfg.Notification.Duration)
	}
	if cfg.Dialog.ConfirmDelay != 0 {
		t.Fatalf("unexpected confirm delay %v", cfg.Dialog.ConfirmDelay)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected two cors origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsBadCatalogURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCatalogBaseURL, "ftp://catalog.test")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http catalog url to be rejected")
	}
}

func TestLoad_RejectsZeroNotificationDuration(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvNotificationDuration, "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected zero notification duration to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "dev")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

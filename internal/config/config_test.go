package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error without DATABASE_URL")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/klagear")
	t.Setenv("BUSINESS_PHONE", "+256700000000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" || cfg.PrometheusPort != "9090" || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.CatalogRefresh != 5*time.Minute {
		t.Errorf("CatalogRefresh = %v, want 5m", cfg.CatalogRefresh)
	}
	if cfg.BusinessWhatsApp != "+256700000000" {
		t.Errorf("BusinessWhatsApp = %q, want fallback to BUSINESS_PHONE", cfg.BusinessWhatsApp)
	}
	if cfg.TelegramEnabled() {
		t.Error("TelegramEnabled() = true without a token")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad refresh", "CATALOG_REFRESH", "soon"},
		{"negative refresh", "CATALOG_REFRESH", "-1m"},
		{"bad operator chat", "OPERATOR_CHAT_ID", "ops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/klagear")
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_OperatorChat(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/klagear")
	t.Setenv("OPERATOR_CHAT_ID", "-100123")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OperatorChatID != -100123 || !cfg.TelegramEnabled() {
		t.Errorf("cfg = %+v", cfg)
	}
}

package config

import (
	"reflect"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{"DATA_SOURCE", "DATA_DIR", "SPENDING_MONTH_POLICY", "SAVINGS_MONTH_POLICY", "ALERT_EMAIL", "CORS_ALLOWED_ORIGINS", "SPENDING_MONTH", "SAVINGS_MONTH"} {
		t.Setenv(key, "")
	}
	t.Setenv("DATA_SOURCE", "file")
	t.Setenv("DATA_DIR", "data")
	t.Setenv("SPENDING_MONTH_POLICY", "fixed")
	t.Setenv("SAVINGS_MONTH_POLICY", "fixed")
	t.Setenv("SPENDING_MONTH", "August")
	t.Setenv("SAVINGS_MONTH", "january")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:8501, http://example.com ,")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.SpendingMonth != "august" {
		t.Errorf("expected lower-cased spending month, got %q", cfg.SpendingMonth)
	}
	want := []string{"http://localhost:8501", "http://example.com"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("origins = %v, want %v", cfg.AllowedOrigins, want)
	}
	if cfg.AlertsEnabled() {
		t.Error("alerts should be disabled without ALERT_EMAIL")
	}
}

func TestNewConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown source", map[string]string{"DATA_SOURCE": "s3"}},
		{"postgres without conn", map[string]string{"DATA_SOURCE": "postgres", "DB_CONN": ""}},
		{"bad spending policy", map[string]string{"DATA_SOURCE": "file", "SPENDING_MONTH_POLICY": "latest"}},
		{"bad savings policy", map[string]string{"DATA_SOURCE": "file", "SAVINGS_MONTH_POLICY": "rolling"}},
		{"alert without smtp", map[string]string{"DATA_SOURCE": "file", "ALERT_EMAIL": "ops@example.com", "SMTP_HOST": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATA_DIR", "data")
			t.Setenv("SPENDING_MONTH_POLICY", "fixed")
			t.Setenv("SAVINGS_MONTH_POLICY", "fixed")
			t.Setenv("ALERT_EMAIL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := NewConfig(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

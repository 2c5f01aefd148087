package config

import (
	"testing"
	"time"
)

// Load exige JWT_SECRET com pelo menos 32 caracteres
const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg := Load()

	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, esperava 8080", cfg.HTTPPort)
	}
	if cfg.BillingInterval != 30*time.Minute {
		t.Errorf("BillingInterval = %v, esperava 30m", cfg.BillingInterval)
	}
	if cfg.PlaceholderImage == "" {
		t.Error("PlaceholderImage não deveria ficar vazia")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("BILLING_CHECK_INTERVAL", "5m")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, esperava 9090", cfg.HTTPPort)
	}
	if cfg.BillingInterval != 5*time.Minute {
		t.Errorf("BillingInterval = %v, esperava 5m", cfg.BillingInterval)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"duração Go", "45m", 45 * time.Minute},
		{"segundos puros", "120", 120 * time.Second},
		{"inválida usa padrão", "abc", 30 * time.Minute},
		{"vazia usa padrão", "", 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := getEnvDuration("TEST_DURATION", 30*time.Minute); got != tt.want {
				t.Errorf("getEnvDuration(%q) = %v, esperava %v", tt.value, got, tt.want)
			}
		})
	}
}

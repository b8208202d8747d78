package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port int           `env:"CMS_TEST_PORT" envDefault:"123"`
	TTL  time.Duration `env:"CMS_TEST_TTL" envDefault:"1h"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("CMS_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvMapOverridesDefaults(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	if err := ParseEnvMap(&cfg, map[string]string{"CMS_TEST_TTL": "15m"}); err != nil {
		t.Fatalf("parse env map: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("port = %d, want 123", cfg.Port)
	}
	if cfg.TTL != 15*time.Minute {
		t.Fatalf("ttl = %v, want 15m", cfg.TTL)
	}
}

func TestParseEnvMapNilUsesDefaults(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	if err := ParseEnvMap(&cfg, nil); err != nil {
		t.Fatalf("parse env map: %v", err)
	}
	if cfg.TTL != time.Hour {
		t.Fatalf("ttl = %v, want 1h", cfg.TTL)
	}
}

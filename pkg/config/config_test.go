package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Env != EnvLocal {
		t.Errorf("App.Env = %q, want %q", cfg.App.Env, EnvLocal)
	}
	if cfg.App.Port != 8080 {
		t.Errorf("App.Port = %d, want 8080", cfg.App.Port)
	}
	if cfg.JWT.AccessTTL != 24*time.Hour {
		t.Errorf("JWT.AccessTTL = %v, want 24h", cfg.JWT.AccessTTL)
	}
	if cfg.AuthRateLimit.MaxAttempts != 10 {
		t.Errorf("AuthRateLimit.MaxAttempts = %d, want 10", cfg.AuthRateLimit.MaxAttempts)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MODSTUDIO_APP_ENV", EnvStaging)
	t.Setenv("MODSTUDIO_APP_PORT", "9090")
	t.Setenv("MODSTUDIO_DB_NAME", "modstudio_staging")
	t.Setenv("MODSTUDIO_JWT_SECRET", "topsecret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Env != EnvStaging {
		t.Errorf("App.Env = %q, want %q", cfg.App.Env, EnvStaging)
	}
	if cfg.App.Port != 9090 {
		t.Errorf("App.Port = %d, want 9090", cfg.App.Port)
	}
	if cfg.DB.Name != "modstudio_staging" {
		t.Errorf("DB.Name = %q, want modstudio_staging", cfg.DB.Name)
	}
}

func TestValidateRejectsUnknownEnv(t *testing.T) {
	t.Setenv("MODSTUDIO_APP_ENV", "prduction")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestValidateRequiresSecretOutsideLocal(t *testing.T) {
	t.Setenv("MODSTUDIO_APP_ENV", EnvProduction)
	t.Setenv("MODSTUDIO_JWT_SECRET", "")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing jwt secret")
	}
	if !strings.Contains(err.Error(), "jwt secret") {
		t.Errorf("error = %v, want mention of jwt secret", err)
	}
}

func TestDBConfigDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}
	got := c.DSN()
	want := "host=db port=5433 user=u password=p dbname=n sslmode=require"
	if got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.App.Port == "" {
		t.Fatalf("expected default port")
	}
	if cfg.Auth.JWTExpiration() <= 0 {
		t.Fatalf("expected positive token lifetime")
	}
}

func TestLoad_JWTExpirationFromEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_EXPIRATION_MS", "90000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := cfg.Auth.JWTExpiration(); got != 90*time.Second {
		t.Fatalf("expected 90s lifetime, got %v", got)
	}
}

func TestLoad_InvalidJWTExpiration(t *testing.T) {
	t.Setenv("AUTH_JWT_EXPIRATION_MS", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric AUTH_JWT_EXPIRATION_MS")
	}
}

func TestAuthConfig_ExpirationFloor(t *testing.T) {
	cfg := AuthConfig{JWTExpirationMilli: 0}
	if got := cfg.JWTExpiration(); got != time.Hour {
		t.Fatalf("expected fallback lifetime, got %v", got)
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/social")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.JWTTTL() != 0 {
		t.Fatalf("expected non-expiring tokens by default, got %v", cfg.JWTTTL())
	}
	if cfg.LoginAttemptWindow != 15*time.Minute || cfg.LoginMaxAttempts != 10 {
		t.Fatalf("unexpected limiter defaults: %v/%d", cfg.LoginAttemptWindow, cfg.LoginMaxAttempts)
	}
	if !cfg.MigrateOnStart {
		t.Fatalf("expected migrations on start by default")
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production by default")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/social")
	t.Setenv("PORT", "3000")
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("JWT_TTL_MINUTES", "30")
	t.Setenv("LOGIN_ATTEMPT_WINDOW", "2m")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.0.0.0/8")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "3000" || cfg.JWTKey != "secret" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.JWTTTL() != 30*time.Minute {
		t.Fatalf("expected 30m ttl, got %v", cfg.JWTTTL())
	}
	if cfg.LoginAttemptWindow != 2*time.Minute {
		t.Fatalf("expected 2m window, got %v", cfg.LoginAttemptWindow)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[1] != "10.0.0.0/8" {
		t.Fatalf("unexpected trusted proxies: %v", cfg.TrustedProxies)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development mode")
	}
}

func TestLoadConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when DATABASE_URL is empty")
	}
}

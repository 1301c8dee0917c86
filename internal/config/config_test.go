package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "JWT_TTL", "RABBITMQ_URL", "RABBITMQ_EXCHANGE", "DB_NAME"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("expected default token ttl 24h, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.RabbitMQ.URL != "" {
		t.Errorf("expected rabbitmq disabled by default, got %q", cfg.RabbitMQ.URL)
	}
	if cfg.RabbitMQ.Exchange != "gantabya.accounts" {
		t.Errorf("expected default exchange, got %s", cfg.RabbitMQ.Exchange)
	}
	if cfg.Database.DBName != "gantabya" {
		t.Errorf("expected default db name gantabya, got %s", cfg.Database.DBName)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("NEW_RELIC_ENABLED", "true")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("SERVER_READ_TIMEOUT", "not-a-duration")

	cfg := Load()

	if cfg.Server.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Server.Port)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if !cfg.NewRelic.Enabled {
		t.Error("expected New Relic enabled")
	}
	if cfg.Auth.TokenTTL != 90*time.Minute {
		t.Errorf("expected token ttl 90m, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected invalid duration to fall back to 10s, got %v", cfg.Server.ReadTimeout)
	}
}

func TestLoadSignup(t *testing.T) {
	t.Setenv("BASE_URL", "https://api.example.com")
	t.Setenv("SIGNUP_TOKEN_FILE", "/tmp/tokens.json")
	t.Setenv("SIGNUP_REDIRECT_DELAY", "")

	cfg := LoadSignup()

	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("unexpected base url %s", cfg.BaseURL)
	}
	if cfg.TokenFile != "/tmp/tokens.json" {
		t.Errorf("unexpected token file %s", cfg.TokenFile)
	}
	if cfg.RedirectDelay != time.Second {
		t.Errorf("expected 1s redirect delay, got %v", cfg.RedirectDelay)
	}
}

func TestAuthConfig_Validate(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if err := Load().Auth.Validate(); err != ErrInsecureJWTSecret {
		t.Errorf("expected ErrInsecureJWTSecret for unset secret, got %v", err)
	}

	t.Setenv("JWT_SECRET", PlaceholderJWTSecret)
	if err := Load().Auth.Validate(); err != ErrInsecureJWTSecret {
		t.Errorf("expected ErrInsecureJWTSecret for placeholder secret, got %v", err)
	}

	t.Setenv("JWT_SECRET", "s3cr3t-from-vault")
	if err := Load().Auth.Validate(); err != nil {
		t.Errorf("expected configured secret to pass, got %v", err)
	}
}

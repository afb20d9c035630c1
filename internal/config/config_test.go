package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "JWT_SECRET", "TOKEN_TTL", "LOG_LEVEL", "LOG_FORMAT", "REDIS_URL", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("Expected TTL 24h, got %s", cfg.TokenTTL)
	}
	if !cfg.InsecureSecret() {
		t.Error("Expected default secret to be flagged insecure")
	}
	if cfg.RedisURL != "" {
		t.Errorf("Expected no Redis URL, got %q", cfg.RedisURL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("Expected CORS origins [*], got %v", cfg.CORSOrigins)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Expected addr :8080, got %s", cfg.Addr())
	}
}

func TestLoadEnvFile(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_SECRET", "TOKEN_TTL", "CORS_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("PORT", "9090")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PORT=7070\nJWT_SECRET=s3cret\nTOKEN_TTL=2h\nCORS_ORIGINS=http://localhost:3000, https://sanagustin.mx\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Expected environment to win with port 9090, got %d", cfg.Port)
	}
	if cfg.JWTSecret != "s3cret" || cfg.InsecureSecret() {
		t.Errorf("Expected secret from file, got %q", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("Expected TTL 2h, got %s", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://sanagustin.mx" {
		t.Errorf("Unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected error for invalid PORT")
	}

	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_TTL", "forever")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected error for invalid TOKEN_TTL")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vladimiradmaev/recipe-planner/internal/logger"
)

func TestLoadDefaultsWithSecret(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("httpPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.Storage != StoragePostgres {
		t.Fatalf("storage = %q, want postgres", cfg.Storage)
	}
	if !strings.Contains(cfg.DB.DSN(), "dbname=recipe_planner") {
		t.Fatalf("unexpected dsn %q", cfg.DB.DSN())
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
httpPort: "9000"
jwtSecret: "from-file"
storage: "memory"
redis:
  addr: "localhost:6379"
logger:
  level: "debug"
  format: "text"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", cfgPath)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "9100" {
		t.Fatalf("httpPort = %q, want 9100", cfg.HTTPPort)
	}
	if cfg.JWTSecret != "from-file" {
		t.Fatalf("jwtSecret = %q, want from-file", cfg.JWTSecret)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("storage = %q, want memory", cfg.Storage)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("redis addr = %q", cfg.Redis.Addr)
	}
	if got := cfg.Logger.LoggerSettings().Level; got != logger.LevelDebug {
		t.Fatalf("log level = %v, want debug", got)
	}
}

func TestLoadRejectsMissingSecretAndBadStorage(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORAGE", "sqlite")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "JWT_SECRET") || !strings.Contains(msg, "STORAGE") {
		t.Fatalf("expected both problems reported, got %q", msg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected read error")
	}
}

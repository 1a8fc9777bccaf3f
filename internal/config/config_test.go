package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	coredatabase "github.com/m3rciful/contentbot/core/database"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("telegram:\n  token: abc\n  admin_id: 42\ndatabase:\n  path: " + filepath.Join(t.TempDir(), "bot.db") + "\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CoreConfig().Telegram.Token != "abc" || cfg.Telegram.OwnerID != 42 {
		t.Fatalf("telegram = %+v", cfg.Telegram)
	}
	if cfg.Database.Driver != coredatabase.DriverSQLite {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Session.Backend != SessionSQL || cfg.Session.TTL != 24*time.Hour || cfg.Session.PurgeSchedule != "@every 1h" {
		t.Fatalf("session = %+v", cfg.Session)
	}
	if cfg.Roster.PageSize != 10 || cfg.Roster.SearchPageSize != 50 {
		t.Fatalf("roster = %+v", cfg.Roster)
	}
}

func TestLoadSessionFromEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "env")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.Backend != SessionRedis || cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("session = %+v", cfg.Session)
	}
	if cfg.Redis.Prefix != "contentbot:" {
		t.Fatalf("prefix = %q", cfg.Redis.Prefix)
	}
}

func TestNormalizeRejectsUnknownBackend(t *testing.T) {
	cfg := &Config{Session: SessionConfig{Backend: "etcd"}}
	cfg.Telegram.Token = "x"
	if err := cfg.Normalize(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	cfg = &Config{Session: SessionConfig{Backend: "redis"}}
	cfg.Telegram.Token = "x"
	if err := cfg.Normalize(); err == nil {
		t.Fatalf("expected error for redis without addr")
	}
}

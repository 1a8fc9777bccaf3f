package app

import (
	"context"
	"path/filepath"
	"testing"

	coretelegram "github.com/m3rciful/contentbot/core/telegram"
	"github.com/m3rciful/contentbot/internal/config"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Telegram.Token = "test-token"
	cfg.Telegram.OwnerID = 1
	cfg.Database.Path = filepath.Join(t.TempDir(), "bot.db")
	cfg.Session.Backend = backend
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return cfg
}

func TestBootstrapWiresRuntime(t *testing.T) {
	a, err := Bootstrap(testConfig(t, config.SessionSQL))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer a.Close()

	if a.scheduler == nil {
		t.Fatalf("sql backend should schedule the purge job")
	}
	cats, err := a.store.ListCategories(context.Background())
	if err != nil || len(cats) != 3 {
		t.Fatalf("categories = %d, %v", len(cats), err)
	}

	opts, err := a.TelegramRunOptions()
	if err != nil {
		t.Fatalf("run options: %v", err)
	}
	if len(opts.Routes) != len(botCommands)+5 {
		t.Fatalf("routes = %d", len(opts.Routes))
	}
	if visible := opts.Registry.ListCommands(true); len(visible) != 4 {
		t.Fatalf("visible commands = %+v", visible)
	}
	if len(opts.Middlewares) == 0 || opts.Config.Telegram.Token != "test-token" {
		t.Fatalf("options = %+v", opts)
	}
	if err := opts.OnStart(context.Background(), coretelegram.Runtime{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := opts.OnStop(context.Background(), coretelegram.Runtime{}); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestBootstrapMemorySessions(t *testing.T) {
	a, err := Bootstrap(testConfig(t, config.SessionMemory))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if a.scheduler == nil {
		t.Fatalf("memory backend should schedule the purge job")
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestBootstrapRejectsNilConfig(t *testing.T) {
	if _, err := Bootstrap(nil); err == nil {
		t.Fatalf("expected error")
	}
}

package cmd

import (
	"context"
	"errors"
	"testing"

	coreconfig "github.com/m3rciful/contentbot/core/config"
	coretelegram "github.com/m3rciful/contentbot/core/telegram"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type fakeApp struct{ closed bool }

func (a *fakeApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{}, nil
}

func (a *fakeApp) Close() error {
	a.closed = true
	return nil
}

func TestRunWiresLifecycle(t *testing.T) {
	t.Setenv("CONTENTBOT_TEST_CONFIG", "config.yaml")
	app := &fakeApp{}
	var started bool

	err := Run(Options{
		ConfigEnvVar: "CONTENTBOT_TEST_CONFIG",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			if path != "config.yaml" {
				t.Fatalf("path = %q", path)
			}
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap:      func(ConfigCarrier) (TelegramApp, error) { return app, nil },
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			started = opts.OnStart != nil && opts.OnStop != nil
			return nil
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !started {
		t.Fatalf("lifecycle hooks not installed")
	}
	if !app.closed {
		t.Fatalf("app not closed after run")
	}
}

func TestRunRequiresConfigPath(t *testing.T) {
	t.Setenv("CONTENTBOT_TEST_CONFIG", "")
	err := Run(Options{
		ConfigEnvVar: "CONTENTBOT_TEST_CONFIG",
		LoadConfig:   func(string) (ConfigCarrier, error) { return nil, errors.New("unreachable") },
		Bootstrap:    func(ConfigCarrier) (TelegramApp, error) { return nil, errors.New("unreachable") },
	})
	if err == nil {
		t.Fatalf("expected missing path error")
	}
}

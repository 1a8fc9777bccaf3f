package telegram

import (
	"testing"
	"time"

	coreconfig "github.com/m3rciful/contentbot/core/config"

	tele "gopkg.in/telebot.v4"
)

func TestBuildPollerLongpollDefaults(t *testing.T) {
	p, ok := BuildPoller(PollerOptions{RunMode: coreconfig.RunModeLongpoll}).(*tele.LongPoller)
	if !ok {
		t.Fatalf("expected long poller")
	}
	if p.Timeout != 10*time.Second {
		t.Fatalf("timeout = %s", p.Timeout)
	}
	if len(p.AllowedUpdates) != 2 {
		t.Fatalf("allowed = %v", p.AllowedUpdates)
	}
}

func TestBuildPollerWebhook(t *testing.T) {
	p, ok := BuildPoller(PollerOptions{
		RunMode: "Webhook",
		Webhook: WebhookOptions{Listen: "0.0.0.0", Port: 8443, URL: "https://bot.example.com/hook"},
	}).(*tele.Webhook)
	if !ok {
		t.Fatalf("expected webhook poller")
	}
	if p.Listen != "0.0.0.0:8443" || p.Endpoint.PublicURL != "https://bot.example.com/hook" {
		t.Fatalf("webhook = %+v", p)
	}
}

package telegram

import (
	"testing"

	coreconfig "github.com/m3rciful/contentbot/core/config"
)

func TestDefaultMiddlewaresOrder(t *testing.T) {
	names := func(mws []Middleware) []string {
		out := make([]string, len(mws))
		for i, m := range mws {
			out[i] = m.Name
		}
		return out
	}

	got := names(DefaultMiddlewares(nil, nil))
	want := []string{"recover", "serialize", "logger", "metrics"}
	if len(got) != len(want) {
		t.Fatalf("chain = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chain = %v, want %v", got, want)
		}
	}

	cfg := &coreconfig.Config{RateLimit: coreconfig.RateLimitConfig{IntervalMS: 300}}
	got = names(DefaultMiddlewares(cfg, nil))
	if len(got) != 5 || got[1] != "rate_limit" {
		t.Fatalf("chain with limiter = %v", got)
	}
}

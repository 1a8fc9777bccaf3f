package logger

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func captureLine(t *testing.T, format logFormat, emit func(log *slog.Logger)) string {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	handler := newStructuredHandler(handlerConfig{
		level:    slog.LevelDebug,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	emit(slog.New(handler))
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log line")
	}
	return line
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	ctx := WithRID(Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)
	line := captureLine(t, formatKV, func(log *slog.Logger) {
		LogEvent(ctx, log.With("component", "dialog"), slog.LevelInfo, "route.matched",
			slog.String("status", "OK"),
			slog.String("route", "start"),
		)
	})

	tokens := strings.Split(line, " ")
	expected := []string{"ts=", "level=INFO", "component=dialog", "event=route.matched", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9"}
	if len(tokens) < len(expected) {
		t.Fatalf("unexpected token count: %d (%s)", len(tokens), line)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	ctx := WithRID(Background(), "rid-json")
	line := captureLine(t, formatJSON, func(log *slog.Logger) {
		LogEvent(ctx, log.With("component", "service.users"), slog.LevelError, "user.ban.failed",
			slog.String("status", "fail"),
			slog.String("err", "boom"),
		)
	})
	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"service.users"`, `"event":"user.ban.failed"`, `"status":"fail"`, `"rid":"rid-json"`, `"err":"boom"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	rawRID := BuildRID(123, 456, 789)
	ctx := WithRID(Background(), rawRID)

	kv := captureLine(t, formatKV, func(log *slog.Logger) {
		LogEvent(ctx, log, slog.LevelInfo, "rid.test")
	})
	if !strings.Contains(kv, "rid="+CompactRID(rawRID)) {
		t.Fatalf("expected compact rid, got %s", kv)
	}
	if strings.Contains(kv, "rid_full=") {
		t.Fatalf("rid_full should be omitted in KV output, got %s", kv)
	}

	js := captureLine(t, formatJSON, func(log *slog.Logger) {
		LogEvent(ctx, log, slog.LevelInfo, "rid.test")
	})
	if !strings.Contains(js, `"rid":"3f.co.lx"`) {
		t.Fatalf("expected compact rid in JSON, got %s", js)
	}
	if !strings.Contains(js, `"rid_full":"`+rawRID+`"`) || !strings.Contains(js, `"ts_unix_nano"`) {
		t.Fatalf("expected rid_full and ts_unix_nano in JSON output, got %s", js)
	}
}

func TestStructuredHandlerDefaultsAndDurations(t *testing.T) {
	line := captureLine(t, formatKV, func(log *slog.Logger) {
		log.Info("plain message", slog.Duration("duration", 1500*time.Microsecond), slog.String("empty", ""))
	})
	for _, want := range []string{"component=app", `event="plain message"`, "duration_ms=2"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in %s", want, line)
		}
	}
	if strings.Contains(line, "empty=") {
		t.Fatalf("empty values should be pruned: %s", line)
	}
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(parseRatioSpec("2/5"))
	allowed := 0
	for i := 0; i < 10; i++ {
		if s.Allow() {
			allowed++
		}
	}
	if allowed != 4 {
		t.Fatalf("allowed = %d, want 4", allowed)
	}

	if num, den := parseRatioSpec("10"); num != 1 || den != 10 {
		t.Fatalf("parse bare = %d/%d", num, den)
	}
	off := newRatioSampler(parseRatioSpec("garbage"))
	if !off.Allow() {
		t.Fatal("disabled sampler must allow everything")
	}
}

package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
)

type ctxKey int

const (
	keyLogger ctxKey = iota
	keyRID
	keyUpdateID
	keyUserID
	keyChatID
	keyHandler
)

func withValue(ctx context.Context, key ctxKey, val any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, val)
}

func valueOf[T any](ctx context.Context, key ctxKey) T {
	var zero T
	if ctx == nil {
		return zero
	}
	if v, ok := ctx.Value(key).(T); ok {
		return v
	}
	return zero
}

// WithLogger stores log in ctx for propagation across layers.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if log == nil {
		if ctx == nil {
			return context.Background()
		}
		return ctx
	}
	return withValue(ctx, keyLogger, log)
}

// FromContext returns the logger stored in ctx or the base logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l := valueOf[*slog.Logger](ctx, keyLogger); l != nil {
		return l
	}
	return L
}

// WithRID attaches a request correlation id.
func WithRID(ctx context.Context, rid string) context.Context {
	return withValue(ctx, keyRID, rid)
}

func RIDFrom(ctx context.Context) string { return valueOf[string](ctx, keyRID) }

// WithUpdateMeta attaches the update, user and chat identifiers of the event being processed.
func WithUpdateMeta(ctx context.Context, updateID int, userID, chatID int64) context.Context {
	ctx = withValue(ctx, keyUpdateID, updateID)
	ctx = withValue(ctx, keyUserID, userID)
	return withValue(ctx, keyChatID, chatID)
}

// WithHandler records the route name that is handling the event.
func WithHandler(ctx context.Context, handler string) context.Context {
	if handler == "" {
		if ctx == nil {
			return context.Background()
		}
		return ctx
	}
	return withValue(ctx, keyHandler, handler)
}

func HandlerFrom(ctx context.Context) string { return valueOf[string](ctx, keyHandler) }
func UserIDFrom(ctx context.Context) int64   { return valueOf[int64](ctx, keyUserID) }
func ChatIDFrom(ctx context.Context) int64   { return valueOf[int64](ctx, keyChatID) }
func UpdateIDFrom(ctx context.Context) int   { return valueOf[int](ctx, keyUpdateID) }

// Sanitize drops control and format runes except tab and newline.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
}

// SanitizeLimit applies Sanitize and keeps at most max runes.
func SanitizeLimit(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(Sanitize(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max])
}

// BuildRID returns a correlation identifier in the format updateID:chatID:userID.
func BuildRID(updateID int, chatID, userID int64) string {
	return fmt.Sprintf("%d:%d:%d", updateID, chatID, userID)
}

// CompactRID renders a BuildRID value as dot-separated base36 numbers.
// Anything else is returned unchanged.
func CompactRID(rid string) string {
	rid = strings.TrimSpace(rid)
	parts := strings.Split(rid, ":")
	if len(parts) != 3 {
		return rid
	}
	for i, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return rid
		}
		parts[i] = strconv.FormatInt(n, 36)
	}
	return strings.Join(parts, ".")
}

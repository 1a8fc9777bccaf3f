package router

import (
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/core/metrics"
	tghelpers "github.com/m3rciful/contentbot/core/telegram/helpers"
	"github.com/m3rciful/contentbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Observe writes the per-update summary line and records route metrics.
// An empty route means nothing matched the update.
func Observe(c tele.Context, route string, start time.Time, err error, extras ...slog.Attr) {
	route = NormalizeHandlerName(route)
	ctx := tghelpers.WithHandler(c, route)
	msgs, kb := middleware.GetCounters(c)
	took := time.Since(start)

	outcome := logger.Status(err)
	metrics.ObserveHandler(route, outcome, took)

	attrs := []slog.Attr{
		slog.String("status", outcome),
		slog.String("handler", route),
		slog.String("outcome", outcome),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Duration("duration", logger.RoundMS(took)),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", deriveErrorCode(err)),
		)
	}
	attrs = append(attrs, extras...)
	logger.LogEvent(ctx, logger.Component("tg"), slog.LevelInfo, "handler.handled", attrs...)
}

// NormalizeHandlerName turns a route or command name into a metric-safe label.
func NormalizeHandlerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unmatched"
	}
	name = strings.TrimPrefix(name, "/")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

func deriveErrorCode(err error) string {
	if err == nil {
		return ""
	}
	type coder interface{ Code() string }
	if c, ok := err.(coder); ok {
		if code := strings.TrimSpace(c.Code()); code != "" {
			return strings.ToUpper(strings.ReplaceAll(code, " ", "_"))
		}
	}
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Name() != "" {
		return strings.ToUpper(t.Name())
	}
	return "UNKNOWN_ERROR"
}

package router

import (
	"log/slog"

	"github.com/m3rciful/contentbot/core/logger"
	tg "github.com/m3rciful/contentbot/core/telegram"
	"github.com/m3rciful/contentbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	OwnerID       int64
	OnOwnerReject tele.HandlerFunc
}

// CommandRoutes binds every registered command to its endpoint. Owner-only
// commands are gated before their handler runs.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	ownerOnly := middleware.OwnerOnly(middleware.OwnerOptions{
		OwnerID:  opts.OwnerID,
		OnReject: opts.OnOwnerReject,
	})

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		if def.OwnerOnly {
			h = ownerOnly(h)
		}
		routes = append(routes, tg.Route{Endpoint: cmd, Handler: h})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "commands"),
		slog.Int("commands", len(routes)),
	)
	return routes
}

// InputRoutes binds the non-command update kinds the bot understands to h.
func InputRoutes(h tele.HandlerFunc) []tg.Route {
	if h == nil {
		return nil
	}
	endpoints := []string{tele.OnText, tele.OnContact, tele.OnDocument, tele.OnAudio, tele.OnCallback}
	routes := make([]tg.Route, 0, len(endpoints))
	for _, ep := range endpoints {
		routes = append(routes, tg.Route{Endpoint: ep, Handler: h})
	}
	return routes
}

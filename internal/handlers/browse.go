package handlers

import (
	"context"
	"log/slog"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/core/telegram/format"
	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/storage"
	"github.com/m3rciful/contentbot/internal/ui"
)

// browse lists one category, then delivers its music files one by one.
// A file that fails to deliver is logged and skipped.
func (h *Handlers) browse(c storage.Category) dialog.Handler {
	return func(ctx context.Context, req *dialog.Request) error {
		if _, ok, err := h.member(ctx, req); !ok || err != nil {
			return err
		}
		listing, err := h.store.ContentByCategory(ctx, c.ID)
		if err != nil {
			return err
		}
		if err := send(ctx, req, ui.Listing(c.DisplayName, listing), nil); err != nil {
			return err
		}

		failed := 0
		for _, item := range listing.Music {
			ref := format.DerefString(item.FileReference, "")
			if ref == "" {
				continue
			}
			if err := req.Out.SendFile(ctx, ref, format.DerefString(item.Title, "")); err != nil {
				failed++
				logger.Warn(ctx, "service.content", "browse.file.failed",
					slog.Int64("content_id", item.ID),
					slog.String("category", c.Name),
					logger.Err(err),
				)
			}
		}
		logger.Debug(ctx, "service.content", "browse.done",
			slog.String("category", c.Name),
			slog.Int("texts", len(listing.Texts)),
			slog.Int("music", len(listing.Music)),
			slog.Int("failed", failed),
		)
		return nil
	}
}

func (h *Handlers) goHome(ctx context.Context, req *dialog.Request) error {
	u, ok, err := h.member(ctx, req)
	if !ok || err != nil {
		return err
	}
	return h.home(ctx, req, u, ui.MsgHomeAdmin, ui.MsgHomeUser)
}

func (h *Handlers) goBack(ctx context.Context, req *dialog.Request) error {
	u, ok, err := h.member(ctx, req)
	if !ok || err != nil {
		return err
	}
	return h.home(ctx, req, u, ui.MsgBackAdmin, ui.MsgBackUser)
}

func (h *Handlers) userPanel(ctx context.Context, req *dialog.Request) error {
	if _, ok, err := h.member(ctx, req); !ok || err != nil {
		return err
	}
	return send(ctx, req, ui.MsgUserPanel, ui.UserPanel(h.categories))
}

func (h *Handlers) guide(ctx context.Context, req *dialog.Request) error {
	return send(ctx, req, ui.MsgGuide, nil)
}

func (h *Handlers) settings(ctx context.Context, req *dialog.Request) error {
	if _, ok, err := h.member(ctx, req); !ok || err != nil {
		return err
	}
	return send(ctx, req, ui.MsgSettings, nil)
}

func (h *Handlers) myInfo(ctx context.Context, req *dialog.Request) error {
	u, ok, err := h.member(ctx, req)
	if !ok || err != nil {
		return err
	}
	return send(ctx, req, ui.Profile(u), nil)
}

func (h *Handlers) myStats(ctx context.Context, req *dialog.Request) error {
	u, ok, err := h.member(ctx, req)
	if !ok || err != nil {
		return err
	}
	return send(ctx, req, ui.MyStats(u, h.now()), nil)
}

package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/storage"
	"github.com/m3rciful/contentbot/internal/ui"
	"github.com/m3rciful/contentbot/internal/validate"
)

func (h *Handlers) adminWelcome(ctx context.Context, req *dialog.Request) error {
	return send(ctx, req, ui.MsgWelcome, ui.AdminChoice())
}

func (h *Handlers) adminPanel(ctx context.Context, req *dialog.Request) error {
	return send(ctx, req, ui.MsgAdminPanel, ui.AdminPanel())
}

func (h *Handlers) userManagement(ctx context.Context, req *dialog.Request) error {
	return send(ctx, req, ui.MsgUserManagement, ui.UserManagement())
}

func (h *Handlers) contentManagement(ctx context.Context, req *dialog.Request) error {
	return send(ctx, req, ui.MsgContentMgmt, ui.ContentManagement(h.categories))
}

func (h *Handlers) generalStats(ctx context.Context, req *dialog.Request) error {
	st, err := h.store.Stats(ctx)
	if err != nil {
		return err
	}
	counts, err := h.store.ContentCounts(ctx)
	if err != nil {
		return err
	}
	return send(ctx, req, ui.GeneralStats(st, counts, h.now()), nil)
}

func (h *Handlers) addAdminPrompt(ctx context.Context, req *dialog.Request) error {
	if err := h.sessions.StartAction(ctx, req.Event.UserID, session.ActionAddAdmin, ""); err != nil {
		return err
	}
	return send(ctx, req, ui.MsgAddAdminPrompt, nil)
}

// addAdmin promotes the user whose id was typed. A malformed id keeps the
// session so the admin can retry; every other outcome ends it.
func (h *Handlers) addAdmin(ctx context.Context, req *dialog.Request) error {
	target, err := validate.UserID(req.Event.Text)
	if err != nil {
		return send(ctx, req, ui.MsgInvalidUserID, nil)
	}
	u, err := h.lookup(ctx, target)
	if err != nil {
		return err
	}

	var reply string
	switch {
	case u == nil:
		reply = ui.AdminNotRegistered(target)
	case u.IsAdmin():
		reply = ui.AlreadyAdmin(target, u.Role)
	default:
		n, err := h.store.UpdateUserRole(ctx, target, storage.RoleAdmin)
		if err != nil {
			return err
		}
		reply = ui.ToastNoChange
		if n > 0 {
			u.Role = storage.RoleAdmin
			reply = ui.AdminAdded(u)
		}
	}
	if err := h.sessions.EndAction(ctx, req.Event.UserID); err != nil {
		return err
	}
	return send(ctx, req, reply, ui.AdminPanel())
}

func (h *Handlers) startAddMusic(c storage.Category) dialog.Handler {
	return func(ctx context.Context, req *dialog.Request) error {
		if err := h.sessions.StartAction(ctx, req.Event.UserID, session.ActionAddMusic, c.Name); err != nil {
			return err
		}
		return send(ctx, req, ui.AddMusicPrompt(c), nil)
	}
}

func (h *Handlers) startAddText(c storage.Category) dialog.Handler {
	return func(ctx context.Context, req *dialog.Request) error {
		if err := h.sessions.StartAction(ctx, req.Event.UserID, session.ActionAddText, c.Name); err != nil {
			return err
		}
		return send(ctx, req, ui.AddTextPrompt(c), nil)
	}
}

// receiveMusic stores the uploaded file reference and moves to the text step.
func (h *Handlers) receiveMusic(ctx context.Context, req *dialog.Request) error {
	f := req.Event.File
	if f == nil || f.ID == "" {
		return send(ctx, req, ui.MsgAskMusicAgain, nil)
	}
	title := f.Title
	if title == "" {
		title = f.Name
	}
	if err := h.sessions.UpdateAction(ctx, req.Event.UserID, func(a *session.AdminAction) {
		a.FileRef = f.ID
		a.FileSize = f.Size
		a.FileTitle = title
		a.Step = session.StepText
	}); err != nil {
		return err
	}
	return send(ctx, req, ui.MsgMusicReceived, nil)
}

// pendingCategory resolves the category captured when the action started.
// A category that vanished ends the action and is answered here, returning nil.
func (h *Handlers) pendingCategory(ctx context.Context, req *dialog.Request) (*storage.Category, error) {
	name := req.Session.Admin.Category
	c, err := h.store.CategoryByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		logger.Warn(ctx, "service.content", "category.missing", slog.String("category", name))
		if err := h.sessions.EndAction(ctx, req.Event.UserID); err != nil {
			return nil, err
		}
		return nil, send(ctx, req, ui.MsgError, nil)
	}
	return c, err
}

func (h *Handlers) receiveMusicText(ctx context.Context, req *dialog.Request) error {
	body, err := validate.ContentText(req.Event.Text)
	if err != nil {
		return send(ctx, req, ui.MsgInvalidText, nil)
	}
	c, err := h.pendingCategory(ctx, req)
	if err != nil || c == nil {
		return err
	}

	a := req.Session.Admin
	by := req.Caller.ID
	title, ref, size := a.FileTitle, a.FileRef, a.FileSize
	musicID, err := h.store.AddContent(ctx, storage.NewContent{
		CategoryID:    c.ID,
		Type:          storage.ContentMusic,
		Content:       title,
		Title:         &title,
		FileReference: &ref,
		FileSize:      &size,
		CreatedBy:     &by,
	})
	if err != nil {
		return err
	}
	textID, err := h.store.AddContent(ctx, storage.NewContent{
		CategoryID: c.ID,
		Type:       storage.ContentText,
		Content:    body,
		CreatedBy:  &by,
	})
	if err != nil {
		return err
	}
	if err := h.sessions.EndAction(ctx, req.Event.UserID); err != nil {
		return err
	}
	logger.Info(ctx, "service.content", "content.music_added",
		slog.String("category", c.Name),
		slog.Int64("music_id", musicID),
		slog.Int64("text_id", textID),
	)
	return send(ctx, req, ui.MsgMusicSaved, ui.ContentManagement(h.categories))
}

func (h *Handlers) receiveText(ctx context.Context, req *dialog.Request) error {
	body, err := validate.ContentText(req.Event.Text)
	if err != nil {
		return send(ctx, req, ui.MsgInvalidText, nil)
	}
	c, err := h.pendingCategory(ctx, req)
	if err != nil || c == nil {
		return err
	}
	by := req.Caller.ID
	id, err := h.store.AddContent(ctx, storage.NewContent{
		CategoryID: c.ID,
		Type:       storage.ContentText,
		Content:    body,
		CreatedBy:  &by,
	})
	if err != nil {
		return err
	}
	if err := h.sessions.EndAction(ctx, req.Event.UserID); err != nil {
		return err
	}
	logger.Info(ctx, "service.content", "content.text_added",
		slog.String("category", c.Name),
		slog.Int64("text_id", id),
	)
	return send(ctx, req, ui.MsgTextSaved, ui.ContentManagement(h.categories))
}

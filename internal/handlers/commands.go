package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/ui"
	"github.com/m3rciful/contentbot/internal/validate"
)

func (h *Handlers) start(ctx context.Context, req *dialog.Request) error {
	id := req.Event.UserID
	u, err := h.lookup(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		if err := h.sessions.StartRegistration(ctx, id); err != nil {
			return err
		}
		logger.Info(ctx, "service.users", "registration.start", slog.Int64("user_id", id))
		return send(ctx, req, ui.MsgAskPhone, ui.PhoneRequest())
	}
	if !u.IsActive {
		return send(ctx, req, ui.MsgDeactivated, nil)
	}
	if req.Session != nil {
		if err := h.sessions.Clear(ctx, id); err != nil {
			return err
		}
	}
	return h.home(ctx, req, u, ui.MsgWelcome, ui.MsgWelcomeBack)
}

func (h *Handlers) help(ctx context.Context, req *dialog.Request) error {
	return send(ctx, req, ui.MsgHelp, nil)
}

func (h *Handlers) myID(ctx context.Context, req *dialog.Request) error {
	u, err := h.lookup(ctx, req.Event.UserID)
	if err != nil {
		return err
	}
	return sendMD(ctx, req, ui.MyID(req.Event.UserID, u), nil)
}

// makeAdmin promotes the configured owner to super_admin.
func (h *Handlers) makeAdmin(ctx context.Context, req *dialog.Request) error {
	id := req.Event.UserID
	if h.owner == 0 || id != h.owner {
		logger.Warn(ctx, "service.users", "promote.denied", slog.Int64("user_id", id))
		return send(ctx, req, ui.MsgDenied, nil)
	}
	u, err := h.lookup(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return send(ctx, req, ui.MsgRegisterFirst, nil)
	}
	if _, err := h.store.PromoteSuperAdmin(ctx, id); err != nil {
		return err
	}
	return send(ctx, req, ui.MsgOwnerPromoted, ui.AdminChoice())
}

// sendCommand handles /send <id>.
func (h *Handlers) sendCommand(ctx context.Context, req *dialog.Request) error {
	raw := strings.TrimSpace(req.Event.Args)
	if raw == "" {
		return sendMD(ctx, req, ui.MsgSendUsage, nil)
	}
	target, err := validate.UserID(strings.Fields(raw)[0])
	if err != nil {
		return send(ctx, req, ui.MsgInvalidUserID, nil)
	}
	return h.composeTo(ctx, req, target)
}

// composeTo opens a send_message session aimed at target.
func (h *Handlers) composeTo(ctx context.Context, req *dialog.Request, target int64) error {
	u, err := h.lookup(ctx, target)
	if err != nil {
		return err
	}
	if u == nil {
		if req.Event.Kind == dialog.KindCallback {
			return req.Out.Ack(ctx, ui.ToastUserNotFound)
		}
		return send(ctx, req, ui.TargetNotFound(target), nil)
	}
	id := req.Event.UserID
	if err := h.sessions.StartAction(ctx, id, session.ActionSendMessage, ""); err != nil {
		return err
	}
	if err := h.sessions.UpdateAction(ctx, id, func(a *session.AdminAction) {
		a.TargetUserID = target
	}); err != nil {
		return err
	}
	if err := send(ctx, req, ui.ComposeMessage(u), nil); err != nil {
		return err
	}
	return req.Out.Ack(ctx, ui.MsgMessagePrompted)
}

func (h *Handlers) cancel(ctx context.Context, req *dialog.Request) error {
	if req.Session == nil {
		return send(ctx, req, ui.MsgNothingToCancel, nil)
	}
	if err := h.sessions.Clear(ctx, req.Event.UserID); err != nil {
		return err
	}
	logger.Info(ctx, "service.sessions", "session.cancel",
		slog.Int64("user_id", req.Event.UserID),
		slog.String("kind", string(req.Session.Kind)),
	)
	return send(ctx, req, ui.MsgCancelled, nil)
}

package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m3rciful/contentbot/core/logger"
	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/storage"
	"github.com/m3rciful/contentbot/internal/ui"
	"github.com/m3rciful/contentbot/internal/validate"
	tele "gopkg.in/telebot.v4"
)

// rosterPage loads one roster page and renders it. Searches use the larger
// search page size.
func (h *Handlers) rosterPage(ctx context.Context, page int, field storage.SearchField, term string) (string, *tele.ReplyMarkup, error) {
	per := h.pageSize
	if term != "" {
		per = h.search
	}
	p, err := h.store.ListUsers(ctx, storage.UserQuery{Search: term, Field: field, Page: page, PerPage: per})
	if err != nil {
		return "", nil, err
	}
	if p.Total == 0 && term != "" {
		return ui.UserListHeader(p, term), ui.SearchKeyboard(), nil
	}
	return ui.UserListHeader(p, term), ui.UserListKeyboard(p, ui.SearchFragment(field, term)), nil
}

func (h *Handlers) userList(ctx context.Context, req *dialog.Request) error {
	text, markup, err := h.rosterPage(ctx, 1, storage.SearchAny, "")
	if err != nil {
		return err
	}
	return sendMD(ctx, req, text, markup)
}

func (h *Handlers) userListPage(ctx context.Context, req *dialog.Request) error {
	page, fragment := ui.ParseUserList(req.Payload)
	field, term := ui.ParseSearchFragment(fragment)
	text, markup, err := h.rosterPage(ctx, page, field, term)
	if err != nil {
		return err
	}
	if err := editMD(ctx, req, text, markup); err != nil {
		return err
	}
	return req.Out.Ack(ctx, "")
}

func (h *Handlers) pageIndicator(ctx context.Context, req *dialog.Request) error {
	return req.Out.Ack(ctx, "")
}

// target decodes the user id of a per-user payload and loads the record.
// Unknown or malformed targets are answered with a toast and yield nil.
func (h *Handlers) target(ctx context.Context, req *dialog.Request) (*storage.User, error) {
	id, err := req.Payload.Int64()
	if err != nil {
		return nil, req.Out.Ack(ctx, ui.MsgUnsupported)
	}
	u, err := h.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, req.Out.Ack(ctx, ui.ToastUserNotFound)
	}
	return u, nil
}

func (h *Handlers) userDetail(ctx context.Context, req *dialog.Request) error {
	u, err := h.target(ctx, req)
	if err != nil || u == nil {
		return err
	}
	if err := editMD(ctx, req, ui.UserDetail(u), ui.UserDetailKeyboard(u)); err != nil {
		return err
	}
	return req.Out.Ack(ctx, "")
}

type rosterChange func(ctx context.Context, externalID int64) (int64, error)

// change applies a ban, unban or role update and refreshes the detail view.
// Zero affected rows is a no-op and reported as such.
func (h *Handlers) change(event, done string, apply rosterChange) dialog.Handler {
	return func(ctx context.Context, req *dialog.Request) error {
		u, err := h.target(ctx, req)
		if err != nil || u == nil {
			return err
		}
		n, err := apply(ctx, u.ExternalID)
		if err != nil {
			return err
		}
		logger.Info(ctx, "service.users", event,
			slog.Int64("admin_id", req.Event.UserID),
			slog.Int64("target_id", u.ExternalID),
			slog.Int64("rows", n),
		)
		toast := done
		if n == 0 {
			toast = ui.ToastNoChange
		}
		if n > 0 {
			fresh, err := h.lookup(ctx, u.ExternalID)
			if err != nil {
				return err
			}
			if fresh != nil {
				if err := editMD(ctx, req, ui.UserDetail(fresh), ui.UserDetailKeyboard(fresh)); err != nil {
					return err
				}
			}
		}
		return req.Out.Ack(ctx, toast)
	}
}

func (h *Handlers) banUser(ctx context.Context, req *dialog.Request) error {
	return h.change("user.ban", ui.ToastBanned, h.store.BanUser)(ctx, req)
}

func (h *Handlers) unbanUser(ctx context.Context, req *dialog.Request) error {
	return h.change("user.unban", ui.ToastUnbanned, h.store.UnbanUser)(ctx, req)
}

func (h *Handlers) makeAdminCallback(ctx context.Context, req *dialog.Request) error {
	return h.change("user.make_admin", ui.ToastMadeAdmin, func(ctx context.Context, id int64) (int64, error) {
		return h.store.UpdateUserRole(ctx, id, storage.RoleAdmin)
	})(ctx, req)
}

func (h *Handlers) makeUserCallback(ctx context.Context, req *dialog.Request) error {
	return h.change("user.make_user", ui.ToastMadeUser, func(ctx context.Context, id int64) (int64, error) {
		return h.store.UpdateUserRole(ctx, id, storage.RoleUser)
	})(ctx, req)
}

func (h *Handlers) userStats(ctx context.Context, req *dialog.Request) error {
	u, err := h.target(ctx, req)
	if err != nil || u == nil {
		return err
	}
	if err := send(ctx, req, ui.UserStats(u), nil); err != nil {
		return err
	}
	return req.Out.Ack(ctx, "")
}

func (h *Handlers) messageUser(ctx context.Context, req *dialog.Request) error {
	id, err := req.Payload.Int64()
	if err != nil {
		return req.Out.Ack(ctx, ui.MsgUnsupported)
	}
	return h.composeTo(ctx, req, id)
}

func (h *Handlers) searchMenu(ctx context.Context, req *dialog.Request) error {
	return send(ctx, req, ui.MsgSearchMenu, ui.SearchKeyboard())
}

func (h *Handlers) searchMenuCallback(ctx context.Context, req *dialog.Request) error {
	if err := req.Out.Edit(ctx, dialog.Reply{Text: ui.MsgSearchMenu, Markup: ui.SearchKeyboard()}); err != nil {
		return err
	}
	return req.Out.Ack(ctx, "")
}

// searchBy opens a search_users session scoped to one field.
func (h *Handlers) searchBy(ctx context.Context, req *dialog.Request) error {
	field, ok := ui.ParseSearchField(req.Payload)
	if !ok {
		return req.Out.Ack(ctx, ui.MsgUnsupported)
	}
	id := req.Event.UserID
	if err := h.sessions.StartAction(ctx, id, session.ActionSearchUsers, ""); err != nil {
		return err
	}
	if err := h.sessions.UpdateAction(ctx, id, func(a *session.AdminAction) {
		a.SearchField = string(field)
	}); err != nil {
		return err
	}
	if err := req.Out.Edit(ctx, dialog.Reply{Text: ui.SearchPrompt(field)}); err != nil {
		return err
	}
	return req.Out.Ack(ctx, "")
}

func (h *Handlers) searchInput(ctx context.Context, req *dialog.Request) error {
	term := validate.Collapse(req.Event.Text)
	if term == "" {
		return send(ctx, req, ui.SearchPrompt(storage.SearchField(req.Session.Admin.SearchField)), nil)
	}
	field := storage.SearchField(req.Session.Admin.SearchField)
	switch field {
	case storage.SearchRole:
		term = strings.ToLower(term)
	case storage.SearchPhone:
		// A complete number is matched in its stored form.
		if phone, err := validate.Phone(term); err == nil {
			term = phone
		}
	}
	text, markup, err := h.rosterPage(ctx, 1, field, term)
	if err != nil {
		return err
	}
	if err := h.sessions.EndAction(ctx, req.Event.UserID); err != nil {
		return err
	}
	return sendMD(ctx, req, text, markup)
}

// relayMessage delivers the admin's text to the pending target. The session
// ends whether or not delivery succeeds.
func (h *Handlers) relayMessage(ctx context.Context, req *dialog.Request) error {
	body := strings.TrimSpace(req.Event.Text)
	if body == "" {
		return send(ctx, req, ui.MsgEmptyMessage, nil)
	}
	targetID := req.Session.Admin.TargetUserID
	target, err := h.lookup(ctx, targetID)
	if err != nil {
		return err
	}
	if err := h.sessions.EndAction(ctx, req.Event.UserID); err != nil {
		return err
	}
	if target == nil {
		return send(ctx, req, ui.TargetNotFound(targetID), nil)
	}

	envelope := ui.RelayEnvelope(req.Caller, body, h.now())
	if err := req.Out.Relay(ctx, target.ExternalID, envelope); err != nil {
		logger.Warn(ctx, "service.users", "relay.failed",
			slog.Int64("admin_id", req.Event.UserID),
			slog.Int64("target_id", target.ExternalID),
			logger.Err(err),
		)
		return send(ctx, req, ui.RelayFailed(target.ExternalID), nil)
	}
	logger.Info(ctx, "service.users", "relay.sent",
		slog.Int64("admin_id", req.Event.UserID),
		slog.Int64("target_id", target.ExternalID),
	)
	return send(ctx, req, ui.RelaySent(target, body), nil)
}

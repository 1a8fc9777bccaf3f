// Package handlers implements every bot interaction and the route table
// that binds them to the dialog router.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/storage"
	"github.com/m3rciful/contentbot/internal/ui"
)

// Deps are the collaborators shared by all handlers.
type Deps struct {
	Store    *storage.Store
	Sessions *session.Manager
	// OwnerID may run /makeadmin; zero disables the command.
	OwnerID        int64
	PageSize       int
	SearchPageSize int
	Now            func() time.Time
}

// Handlers holds the bot's interaction logic.
type Handlers struct {
	store    *storage.Store
	sessions *session.Manager
	owner    int64
	pageSize int
	search   int
	now      func() time.Time

	categories []storage.Category
}

// New returns Handlers with defaults applied to unset fields.
func New(d Deps) *Handlers {
	h := &Handlers{
		store:    d.Store,
		sessions: d.Sessions,
		owner:    d.OwnerID,
		pageSize: d.PageSize,
		search:   d.SearchPageSize,
		now:      d.Now,
	}
	if h.pageSize <= 0 {
		h.pageSize = 10
	}
	if h.search <= 0 {
		h.search = 50
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// NewRouter loads the categories, builds the route table and returns a router over it.
func NewRouter(ctx context.Context, d Deps) (*dialog.Router, error) {
	h := New(d)
	routes, err := h.Routes(ctx)
	if err != nil {
		return nil, err
	}
	codec, err := ui.NewCodec()
	if err != nil {
		return nil, err
	}
	return dialog.New(routes, dialog.Options{
		Sessions:    d.Sessions,
		Users:       d.Store,
		Codec:       codec,
		DeniedText:  ui.MsgDenied,
		FailureText: ui.MsgError,
	})
}

// member resolves the caller and answers for unregistered or deactivated
// callers. ok is false when the caller has been answered.
func (h *Handlers) member(ctx context.Context, req *dialog.Request) (*storage.User, bool, error) {
	u, err := h.store.GetUserByTelegramID(ctx, req.Event.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, send(ctx, req, ui.MsgRegisterFirst, nil)
	}
	if err != nil {
		return nil, false, err
	}
	if !u.IsActive {
		return nil, false, send(ctx, req, ui.MsgDeactivated, nil)
	}
	return u, true, nil
}

// lookup returns the user or nil when absent.
func (h *Handlers) lookup(ctx context.Context, externalID int64) (*storage.User, error) {
	u, err := h.store.GetUserByTelegramID(ctx, externalID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user %d: %w", externalID, err)
	}
	return u, nil
}

// home answers with the landing keyboard matching the caller's role.
func (h *Handlers) home(ctx context.Context, req *dialog.Request, u *storage.User, adminText, userText string) error {
	if u.IsAdmin() {
		return sendWith(ctx, req, dialog.Reply{Text: adminText, Markup: ui.AdminChoice()})
	}
	return sendWith(ctx, req, dialog.Reply{Text: userText, Markup: ui.MainMenu(h.categories)})
}

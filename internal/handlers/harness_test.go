package handlers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/handlers"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/storage"
	"github.com/m3rciful/contentbot/internal/storage/storagetest"
)

const ownerID = 1

var errBlocked = errors.New("forbidden: bot was blocked by the user")

// recorder captures everything the handlers send.
type recorder struct {
	sent   []dialog.Reply
	edits  []dialog.Reply
	acks   []string
	files  []string
	relays map[int64]string

	failFiles map[string]bool
	relayErr  error
}

func (r *recorder) Send(_ context.Context, reply dialog.Reply) error {
	r.sent = append(r.sent, reply)
	return nil
}

func (r *recorder) Edit(_ context.Context, reply dialog.Reply) error {
	r.edits = append(r.edits, reply)
	return nil
}

func (r *recorder) Ack(_ context.Context, text string) error {
	r.acks = append(r.acks, text)
	return nil
}

func (r *recorder) SendFile(_ context.Context, fileID, _ string) error {
	r.files = append(r.files, fileID)
	if r.failFiles[fileID] {
		return errBlocked
	}
	return nil
}

func (r *recorder) Relay(_ context.Context, chatID int64, text string) error {
	if r.relayErr != nil {
		return r.relayErr
	}
	if r.relays == nil {
		r.relays = map[int64]string{}
	}
	r.relays[chatID] = text
	return nil
}

func (r *recorder) lastText() string {
	if len(r.sent) == 0 {
		return ""
	}
	return r.sent[len(r.sent)-1].Text
}

func (r *recorder) lastAck() string {
	if len(r.acks) == 0 {
		return ""
	}
	return r.acks[len(r.acks)-1]
}

type harness struct {
	t        *testing.T
	ctx      context.Context
	store    *storage.Store
	clock    *storagetest.Clock
	sessions *session.Manager
	router   *dialog.Router

	// next responder; replaced after each dispatch
	out *recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	store, clock := storagetest.New(t)
	mgr := session.NewManager(store.Sessions(), time.Hour)
	router, err := handlers.NewRouter(ctx, handlers.Deps{
		Store:          store,
		Sessions:       mgr,
		OwnerID:        ownerID,
		PageSize:       10,
		SearchPageSize: 50,
		Now:            clock.Now,
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return &harness{t: t, ctx: ctx, store: store, clock: clock, sessions: mgr, router: router, out: &recorder{}}
}

// dispatch runs ev and returns what was sent in response.
func (h *harness) dispatch(ev dialog.Event) (string, *recorder) {
	h.t.Helper()
	if ev.ChatID == 0 {
		ev.ChatID = ev.UserID
	}
	out := h.out
	h.out = &recorder{}
	route, err := h.router.Dispatch(h.ctx, ev, out)
	if err != nil {
		h.t.Fatalf("dispatch %+v via %s: %v", ev, route, err)
	}
	return route, out
}

func (h *harness) text(user int64, s string) (string, *recorder) {
	return h.dispatch(dialog.Event{Kind: dialog.KindText, UserID: user, Text: s})
}

func (h *harness) command(user int64, name, args string) (string, *recorder) {
	return h.dispatch(dialog.Event{Kind: dialog.KindCommand, UserID: user, Command: name, Args: args})
}

func (h *harness) callback(user int64, data string) (string, *recorder) {
	return h.dispatch(dialog.Event{Kind: dialog.KindCallback, UserID: user, Data: data})
}

func (h *harness) register(id int64, first, last, province string, role storage.Role) *storage.User {
	h.t.Helper()
	_, err := h.store.CreateUser(h.ctx, storage.NewUser{
		ExternalID: id,
		Phone:      "09120000000",
		FirstName:  first,
		LastName:   last,
		Province:   province,
	})
	if err != nil {
		h.t.Fatalf("create user %d: %v", id, err)
	}
	switch role {
	case storage.RoleAdmin:
		if _, err := h.store.UpdateUserRole(h.ctx, id, storage.RoleAdmin); err != nil {
			h.t.Fatalf("role: %v", err)
		}
	case storage.RoleSuperAdmin:
		if _, err := h.store.PromoteSuperAdmin(h.ctx, id); err != nil {
			h.t.Fatalf("promote: %v", err)
		}
	}
	return h.user(id)
}

func (h *harness) user(id int64) *storage.User {
	h.t.Helper()
	u, err := h.store.GetUserByTelegramID(h.ctx, id)
	if err != nil {
		h.t.Fatalf("get user %d: %v", id, err)
	}
	return u
}

func (h *harness) session(id int64) *session.Session {
	h.t.Helper()
	s, err := h.sessions.Current(h.ctx, id)
	if err != nil {
		h.t.Fatalf("session %d: %v", id, err)
	}
	return s
}

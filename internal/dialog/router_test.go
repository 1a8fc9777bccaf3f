package dialog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m3rciful/contentbot/core/telegram/callbacks"
	"github.com/m3rciful/contentbot/internal/dialog"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/storage"
)

type fakeSessions struct {
	byUser map[int64]*session.Session
	err    error
}

func (f *fakeSessions) Current(_ context.Context, id int64) (*session.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[id], nil
}

type fakeUsers map[int64]*storage.User

func (f fakeUsers) GetUserByTelegramID(_ context.Context, id int64) (*storage.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

type out struct {
	sent []string
	acks []string
}

func (o *out) Send(_ context.Context, r dialog.Reply) error {
	o.sent = append(o.sent, r.Text)
	return nil
}

func (o *out) Edit(_ context.Context, r dialog.Reply) error {
	o.sent = append(o.sent, r.Text)
	return nil
}

func (o *out) Ack(_ context.Context, text string) error {
	o.acks = append(o.acks, text)
	return nil
}

func (o *out) SendFile(context.Context, string, string) error { return nil }

func (o *out) Relay(context.Context, int64, string) error { return nil }

func noop(context.Context, *dialog.Request) error { return nil }

func options(s *fakeSessions, u fakeUsers) dialog.Options {
	return dialog.Options{Sessions: s, Users: u, DeniedText: "denied", FailureText: "failed"}
}

func TestDuplicateCaptionRejected(t *testing.T) {
	routes := []dialog.Route{
		{Name: "a", Tier: dialog.TierCaption, Caption: "🎵 add", Handle: noop},
		{Name: "b", Tier: dialog.TierCaption, Caption: "🎵 add", Handle: noop},
	}
	_, err := dialog.New(routes, options(&fakeSessions{}, fakeUsers{}))
	if !errors.Is(err, dialog.ErrDuplicateCaption) {
		t.Fatalf("err = %v", err)
	}
}

func TestInvalidRoutesRejected(t *testing.T) {
	cases := map[string]dialog.Route{
		"no name":           {Tier: dialog.TierCommand, Match: dialog.Always, Handle: noop},
		"caption predicate": {Name: "x", Tier: dialog.TierCaption, Caption: "c", Match: dialog.Always, Handle: noop},
		"missing predicate": {Name: "x", Tier: dialog.TierInput, Handle: noop},
		"no handler":        {Name: "x", Tier: dialog.TierInput, Match: dialog.Always},
	}
	for name, rt := range cases {
		if _, err := dialog.New([]dialog.Route{rt}, options(&fakeSessions{}, fakeUsers{})); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestTierOrderWins(t *testing.T) {
	sessions := &fakeSessions{byUser: map[int64]*session.Session{
		1: {Kind: session.KindRegistration, Registration: &session.Registration{Step: session.StepFirstName}},
	}}
	// declared out of order on purpose
	routes := []dialog.Route{
		{Name: "fallback", Tier: dialog.TierFallback, Match: dialog.Always, Handle: noop},
		{Name: "menu", Tier: dialog.TierCaption, Caption: "Menu", Handle: noop},
		{Name: "first_name", Tier: dialog.TierRegistration, Match: dialog.AtRegistrationStep(session.StepFirstName), Handle: noop},
		{Name: "start", Tier: dialog.TierCommand, Match: dialog.Command("/start"), Handle: noop},
	}
	r, err := dialog.New(routes, options(sessions, fakeUsers{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	cases := []struct {
		ev   dialog.Event
		want string
	}{
		{dialog.Event{Kind: dialog.KindCommand, UserID: 1, Command: "start"}, "start"},
		{dialog.Event{Kind: dialog.KindText, UserID: 1, Text: "Menu"}, "first_name"},
		{dialog.Event{Kind: dialog.KindText, UserID: 2, Text: "Menu"}, "menu"},
		{dialog.Event{Kind: dialog.KindText, UserID: 2, Text: "other"}, "fallback"},
	}
	for _, tc := range cases {
		got, err := r.Dispatch(context.Background(), tc.ev, &out{})
		if err != nil || got != tc.want {
			t.Fatalf("dispatch %+v = %q, %v; want %q", tc.ev, got, err, tc.want)
		}
	}
}

func TestAdminGuard(t *testing.T) {
	users := fakeUsers{
		1: {ExternalID: 1, Role: storage.RoleAdmin, IsActive: true},
		2: {ExternalID: 2, Role: storage.RoleUser, IsActive: true},
		3: {ExternalID: 3, Role: storage.RoleSuperAdmin, IsActive: false},
	}
	var ran []int64
	var caller *storage.User
	routes := []dialog.Route{{
		Name: "panel", Tier: dialog.TierCaption, Caption: "Panel", Require: dialog.Admin,
		Handle: func(_ context.Context, req *dialog.Request) error {
			ran = append(ran, req.Event.UserID)
			caller = req.Caller
			return nil
		},
	}}
	r, err := dialog.New(routes, options(&fakeSessions{}, users))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, id := range []int64{1, 2, 3, 4} {
		o := &out{}
		if _, err := r.Dispatch(context.Background(), dialog.Event{Kind: dialog.KindText, UserID: id, Text: "Panel"}, o); err != nil {
			t.Fatalf("dispatch %d: %v", id, err)
		}
		if id != 1 && (len(o.sent) != 1 || o.sent[0] != "denied") {
			t.Fatalf("user %d replies = %v", id, o.sent)
		}
	}
	if len(ran) != 1 || ran[0] != 1 || caller == nil || caller.ExternalID != 1 {
		t.Fatalf("ran = %v caller = %+v", ran, caller)
	}
}

func TestCallbackPayloadDecoded(t *testing.T) {
	codec, err := callbacks.NewCodec("user_list", "user_detail")
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	var args string
	routes := []dialog.Route{
		{Name: "detail", Tier: dialog.TierCallback, Match: dialog.OnCallback("user_detail"), Handle: func(_ context.Context, req *dialog.Request) error {
			args = req.Payload.Args
			return nil
		}},
		{Name: "unknown", Tier: dialog.TierFallback, Match: dialog.Is(dialog.KindCallback), Handle: noop},
	}
	opts := options(&fakeSessions{}, fakeUsers{})
	opts.Codec = codec
	r, err := dialog.New(routes, opts)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got, _ := r.Dispatch(context.Background(), dialog.Event{Kind: dialog.KindCallback, UserID: 1, Data: "user_detail_42"}, &out{}); got != "detail" || args != "42" {
		t.Fatalf("route=%s args=%q", got, args)
	}
	if got, _ := r.Dispatch(context.Background(), dialog.Event{Kind: dialog.KindCallback, UserID: 1, Data: "delete_42"}, &out{}); got != "unknown" {
		t.Fatalf("route = %s", got)
	}
}

func TestFailuresAnswerGenerically(t *testing.T) {
	boom := errors.New("db down")
	routes := []dialog.Route{
		{Name: "explode", Tier: dialog.TierFallback, Match: dialog.Always, Handle: func(context.Context, *dialog.Request) error { return boom }},
	}

	r, _ := dialog.New(routes, options(&fakeSessions{}, fakeUsers{}))
	o := &out{}
	if _, err := r.Dispatch(context.Background(), dialog.Event{Kind: dialog.KindCallback, UserID: 1}, o); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(o.acks) != 1 || o.acks[0] != "failed" {
		t.Fatalf("acks = %v", o.acks)
	}

	r, _ = dialog.New(routes, options(&fakeSessions{err: boom}, fakeUsers{}))
	o = &out{}
	route, err := r.Dispatch(context.Background(), dialog.Event{Kind: dialog.KindText, UserID: 1, Text: "hi"}, o)
	if route != "session" || !errors.Is(err, boom) {
		t.Fatalf("route=%s err=%v", route, err)
	}
	if len(o.sent) != 1 || o.sent[0] != "failed" {
		t.Fatalf("sent = %v", o.sent)
	}
}

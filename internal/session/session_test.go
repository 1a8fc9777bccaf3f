package session_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m3rciful/contentbot/core/telegram/state"
	"github.com/m3rciful/contentbot/internal/session"
	"github.com/m3rciful/contentbot/internal/storage/storagetest"
)

func backends(t *testing.T) map[string]state.Store {
	sqlStore, _ := storagetest.New(t)
	out := map[string]state.Store{
		"memory": state.NewMemoryStore(),
		"sql":    sqlStore.Sessions(),
	}
	if addr := os.Getenv("REDIS_TEST_ADDR"); addr != "" {
		client, err := state.NewRedisClient(context.Background(), state.RedisOptions{Addr: addr})
		if err != nil {
			t.Fatalf("redis: %v", err)
		}
		t.Cleanup(func() { _ = client.Close() })
		out["redis"] = state.NewRedisStore(client, fmt.Sprintf("contentbot-test-%d:", time.Now().UnixNano()))
	}
	return out
}

func TestRegistrationProtocol(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		m := session.NewManager(store, time.Hour)

		if s, err := m.Current(ctx, 1); err != nil || s != nil {
			t.Fatalf("%s: fresh user session = %+v err=%v", name, s, err)
		}
		if err := m.StartRegistration(ctx, 1); err != nil {
			t.Fatalf("%s: start: %v", name, err)
		}
		s, _ := m.Current(ctx, 1)
		if !s.AtRegistrationStep(session.StepPhone) {
			t.Fatalf("%s: after start = %+v", name, s)
		}

		err := m.AdvanceRegistration(ctx, 1, session.StepFirstName, func(r *session.Registration) {
			r.Phone = "09121234567"
		})
		if err != nil {
			t.Fatalf("%s: advance: %v", name, err)
		}
		err = m.CollectRegistration(ctx, 1, func(r *session.Registration) {
			r.FirstName = "علی"
			r.Step = session.StepProvince
		})
		if err != nil {
			t.Fatalf("%s: collect: %v", name, err)
		}

		s, _ = m.Current(ctx, 1)
		if !s.AtRegistrationStep(session.StepFirstName) {
			t.Fatalf("%s: collect changed step: %+v", name, s.Registration)
		}
		if s.Registration.Phone != "09121234567" || s.Registration.FirstName != "علی" {
			t.Fatalf("%s: fields = %+v", name, s.Registration)
		}

		if err := m.FinishRegistration(ctx, 1); err != nil {
			t.Fatalf("%s: finish: %v", name, err)
		}
		if s, _ := m.Current(ctx, 1); s != nil {
			t.Fatalf("%s: session left after finish", name)
		}
	}
}

func TestAdminProtocol(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		m := session.NewManager(store, time.Hour)

		if err := m.UpdateAction(ctx, 2, func(*session.AdminAction) {}); !errors.Is(err, session.ErrNoSession) {
			t.Fatalf("%s: update without session err = %v", name, err)
		}
		if err := m.StartAction(ctx, 2, session.ActionAddMusic, "vip_package"); err != nil {
			t.Fatalf("%s: start: %v", name, err)
		}
		s, _ := m.Current(ctx, 2)
		if !s.Awaiting(session.ActionAddMusic, session.StepMusic) || s.Admin.Category != "vip_package" {
			t.Fatalf("%s: after start = %+v", name, s.Admin)
		}

		err := m.UpdateAction(ctx, 2, func(a *session.AdminAction) {
			a.FileRef = "file-1"
			a.FileSize = 99
			a.Step = session.StepText
			a.Action = session.ActionAddText
		})
		if err != nil {
			t.Fatalf("%s: update: %v", name, err)
		}
		s, _ = m.Current(ctx, 2)
		if !s.Awaiting(session.ActionAddMusic, session.StepText) {
			t.Fatalf("%s: update should keep action and move step: %+v", name, s.Admin)
		}
		if s.Admin.FileRef != "file-1" || s.Admin.FileSize != 99 {
			t.Fatalf("%s: fields = %+v", name, s.Admin)
		}

		if err := m.StartRegistration(ctx, 2); err != nil {
			t.Fatalf("%s: start registration: %v", name, err)
		}
		s, _ = m.Current(ctx, 2)
		if s.Kind != session.KindRegistration || s.Admin != nil {
			t.Fatalf("%s: new wizard did not supersede old: %+v", name, s)
		}
		if err := m.EndAction(ctx, 2); err != nil {
			t.Fatalf("%s: end: %v", name, err)
		}
	}
}

func TestInitialSteps(t *testing.T) {
	cases := map[session.Action]session.Step{
		session.ActionAddMusic:    session.StepMusic,
		session.ActionAddText:     session.StepText,
		session.ActionAddAdmin:    session.StepInput,
		session.ActionSearchUsers: session.StepInput,
		session.ActionSendMessage: session.StepMessage,
	}
	for action, want := range cases {
		if got := session.InitialStep(action); got != want {
			t.Fatalf("InitialStep(%s) = %s, want %s", action, got, want)
		}
	}
}

func TestUndecodablePayloadIsCleared(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore()
	m := session.NewManager(store, time.Hour)

	payloads := []string{`not json`, `{"kind":"registration"}`, `{"kind":"legacy","step":"phone"}`}
	for _, p := range payloads {
		_ = store.Save(ctx, 3, []byte(p), time.Hour)
		s, err := m.Current(ctx, 3)
		if err != nil || s != nil {
			t.Fatalf("payload %q: session = %+v err=%v", p, s, err)
		}
		if _, ok, _ := store.Load(ctx, 3); ok {
			t.Fatalf("payload %q was not cleared", p)
		}
	}
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	store := state.NewMemoryStore().WithClock(func() time.Time { return now })
	m := session.NewManager(store, time.Minute)

	_ = m.StartAction(ctx, 4, session.ActionAddAdmin, "")
	now = now.Add(2 * time.Minute)
	if s, _ := m.Current(ctx, 4); s != nil {
		t.Fatalf("expired session returned: %+v", s)
	}
}

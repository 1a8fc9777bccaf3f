package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m3rciful/contentbot/core/telegram/state"
	"github.com/m3rciful/contentbot/internal/storage/storagetest"
)

func TestPurgeSessionsSQL(t *testing.T) {
	ctx := context.Background()
	store, clock := storagetest.New(t)
	sessions := store.Sessions()

	_ = sessions.Save(ctx, 1, []byte(`{}`), time.Minute)
	_ = sessions.Save(ctx, 2, []byte(`{}`), time.Hour)
	clock.Advance(2 * time.Minute)

	n, err := PurgeSessions(ctx, sessions)
	if err != nil || n != 1 {
		t.Fatalf("purge = %d, %v", n, err)
	}
	if _, ok, _ := sessions.Load(ctx, 2); !ok {
		t.Fatalf("live session purged")
	}
}

func TestPurgeSessionsMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	mem := state.NewMemoryStore().WithClock(func() time.Time { return now })
	_ = mem.Save(ctx, 1, []byte(`{}`), time.Second)
	now = now.Add(time.Minute)

	if n, err := PurgeSessions(ctx, mem); err != nil || n != 1 {
		t.Fatalf("purge = %d, %v", n, err)
	}
}

type failingPurger struct{}

func (failingPurger) Purge(context.Context) (int64, error) { return 0, errors.New("locked") }

func TestPurgeSessionsFailure(t *testing.T) {
	if _, err := PurgeSessions(context.Background(), failingPurger{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSchedulerRegistration(t *testing.T) {
	s := NewScheduler()
	if err := s.AddSessionPurge("not a schedule", failingPurger{}); err == nil {
		t.Fatalf("bad schedule accepted")
	}
	if err := s.AddSessionPurge("@every 1h", nil); err == nil {
		t.Fatalf("nil purger accepted")
	}
	if err := s.AddSessionPurge("@every 1h", failingPurger{}); err != nil {
		t.Fatalf("add: %v", err)
	}
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

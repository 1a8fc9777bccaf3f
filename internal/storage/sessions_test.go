package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/m3rciful/contentbot/internal/storage/storagetest"
)

func TestSessionSaveSupersedes(t *testing.T) {
	ctx := context.Background()
	s, _ := storagetest.New(t)
	sessions := s.Sessions()

	if err := sessions.Save(ctx, 5, []byte(`{"kind":"a"}`), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := sessions.Save(ctx, 5, []byte(`{"kind":"b"}`), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, ok, err := sessions.Load(ctx, 5)
	if err != nil || !ok || string(data) != `{"kind":"b"}` {
		t.Fatalf("load = %s ok=%v err=%v", data, ok, err)
	}

	var rows int
	if err := s.DB().Get(&rows, `SELECT COUNT(*) FROM sessions WHERE external_user_id = 5`); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}

	if err := sessions.Clear(ctx, 5); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := sessions.Load(ctx, 5); ok {
		t.Fatalf("session survived clear")
	}
}

func TestSessionExpiryAndPurge(t *testing.T) {
	ctx := context.Background()
	s, clock := storagetest.New(t)
	sessions := s.Sessions()

	_ = sessions.Save(ctx, 1, []byte("{}"), time.Minute)
	_ = sessions.Save(ctx, 2, []byte("{}"), 24*time.Hour)
	clock.Advance(2 * time.Minute)

	if _, ok, _ := sessions.Load(ctx, 1); ok {
		t.Fatalf("expired session returned")
	}
	if _, ok, _ := sessions.Load(ctx, 2); !ok {
		t.Fatalf("live session missing")
	}
	n, err := sessions.Purge(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("purged %d, want 1", n)
	}
}

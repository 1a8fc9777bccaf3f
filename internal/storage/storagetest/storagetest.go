// Package storagetest opens a migrated SQLite store for tests.
package storagetest

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	coredatabase "github.com/m3rciful/contentbot/core/database"
	"github.com/m3rciful/contentbot/internal/storage"
)

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// New applies the embedded migrations to a fresh database file, seeds the
// default categories and returns a store driven by the returned clock.
func New(t testing.TB) (*storage.Store, *Clock) {
	t.Helper()
	cfg := coredatabase.Config{
		Driver: coredatabase.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "contentbot.db"),
	}
	if err := coredatabase.RunMigrations(cfg); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := coredatabase.Connect(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	clock := &Clock{now: time.Unix(1_700_000_000, 0)}
	store := storage.New(db).WithClock(clock.Now)
	if err := store.SeedCategories(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store, clock
}

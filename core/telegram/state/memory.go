package state

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore is an in-process Store for development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]memoryEntry
	now      func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore using the wall clock.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]memoryEntry), now: time.Now}
}

// WithClock replaces the clock used for expiry checks.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) Save(_ context.Context, userID int64, data []byte, ttl time.Duration) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.mu.Lock()
	m.sessions[userID] = memoryEntry{data: buf, expires: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(_ context.Context, userID int64) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[userID]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.sessions, userID)
		return nil, false, nil
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true, nil
}

func (m *MemoryStore) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
	return nil
}

// Purge drops every expired entry and reports how many were removed.
func (m *MemoryStore) Purge(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	var n int64
	for id, e := range m.sessions {
		if !now.Before(e.expires) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

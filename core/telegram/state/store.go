package state

import (
	"context"
	"time"
)

// Store keeps at most one session payload per user.
// Load reports ok=false for a missing or expired session.
type Store interface {
	Save(ctx context.Context, userID int64, data []byte, ttl time.Duration) error
	Load(ctx context.Context, userID int64) (data []byte, ok bool, err error)
	Clear(ctx context.Context, userID int64) error
}

// Purger is implemented by stores that need expired rows removed explicitly.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

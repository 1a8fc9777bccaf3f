package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/m3rciful/contentbot/core/logger"
)

// SessionStore keeps dialog sessions in the sessions table. Expired rows
// are invisible to Load and removed by Purge.
type SessionStore struct {
	store *Store
}

// Sessions returns the SQL session backend sharing this store's handle and clock.
func (s *Store) Sessions() *SessionStore {
	return &SessionStore{store: s}
}

// Save replaces any session of userID inside one transaction.
func (ss *SessionStore) Save(ctx context.Context, userID int64, data []byte, ttl time.Duration) error {
	s := ss.store
	now := s.now()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: save session: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM sessions WHERE external_user_id = ?`), userID); err != nil {
		return fmt.Errorf("storage: save session: delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO sessions (external_user_id, data, created_at, expires_at) VALUES (?, ?, ?, ?)`),
		userID, string(data), now.Unix(), now.Add(ttl).Unix(),
	); err != nil {
		return fmt.Errorf("storage: save session: insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: save session: commit: %w", err)
	}
	return nil
}

// Load returns the live session payload of userID.
func (ss *SessionStore) Load(ctx context.Context, userID int64) ([]byte, bool, error) {
	s := ss.store
	var data string
	err := s.db.GetContext(ctx, &data, s.q(`
		SELECT data FROM sessions WHERE external_user_id = ? AND expires_at > ?`),
		userID, s.unix(),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: load session: %w", err)
	}
	return []byte(data), true, nil
}

// Clear removes the session of userID if any.
func (ss *SessionStore) Clear(ctx context.Context, userID int64) error {
	s := ss.store
	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM sessions WHERE external_user_id = ?`), userID); err != nil {
		return fmt.Errorf("storage: clear session: %w", err)
	}
	return nil
}

// Purge deletes expired sessions and reports how many rows went away.
func (ss *SessionStore) Purge(ctx context.Context) (int64, error) {
	s := ss.store
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM sessions WHERE expires_at <= ?`), s.unix())
	if err != nil {
		return 0, fmt.Errorf("storage: purge sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		logger.SVCSessions.Info("expired sessions purged",
			slog.String("event", "session.purge"),
			slog.Int64("rows", n),
		)
	}
	return n, nil
}

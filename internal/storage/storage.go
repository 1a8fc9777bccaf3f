// Package storage persists users, content categories, content items and
// dialog sessions through sqlx. Queries are written with '?' placeholders and
// rebound for the active driver, so the same code serves SQLite and Postgres.
package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

// Store is the relational persistence layer.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// New wraps an open database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// WithClock replaces the clock used for timestamps and session expiry.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// DB exposes the underlying handle for seeders and jobs.
func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) unix() int64 { return s.now().Unix() }

func (s *Store) q(query string) string { return s.db.Rebind(query) }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere, with
// wildcards in term taken literally. Use with ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

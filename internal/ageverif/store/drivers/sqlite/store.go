package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
	_ "modernc.org/sqlite"
)

// DefaultSessionCapacity bounds the sessions table when no capacity is given.
const DefaultSessionCapacity = 10000

type Store struct {
	db              *sql.DB
	dsn             string
	sessionCapacity int
}

// NewStore opens the database at dsn. Sessions beyond sessionCapacity are
// evicted oldest first; sessionCapacity <= 0 uses DefaultSessionCapacity.
func NewStore(dsn string, sessionCapacity int) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	if sessionCapacity <= 0 {
		sessionCapacity = DefaultSessionCapacity
	}

	return &Store{
		db:              db,
		dsn:             dsn,
		sessionCapacity: sessionCapacity,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Sessions() store.Sessions {
	return &sessionsRepo{db: s.db, capacity: s.sessionCapacity}
}

func (s *Store) Attempts() store.Attempts {
	return &attemptsRepo{db: s.db}
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// Timestamps are stored as unix milliseconds; 0 means unset.

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (memory, sqlite)
// implement it; redis only provides Sessions and is composed in with
// WithSessions.
type Store interface {
	Sessions() Sessions
	Attempts() Attempts

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

type Sessions interface {
	// CreateSession inserts or overwrites a session keyed by its ID.
	CreateSession(ctx context.Context, s domain.VerificationSession) error

	// GetSession returns ErrNotFound for unknown or expired sessions.
	GetSession(ctx context.Context, id string) (domain.VerificationSession, error)

	// DeleteExpiredSessions removes sessions expired at now and returns how
	// many were removed. Drivers with native expiry may return 0.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	// CountSessions returns the number of stored sessions, expired or not.
	CountSessions(ctx context.Context) (int64, error)
}

type Attempts interface {
	// RecordAttempt appends to the ledger. IDs are ULIDs minted by the caller.
	RecordAttempt(ctx context.Context, a domain.Attempt) error

	// ListAttemptsByCustomer returns up to limit attempts, newest first.
	ListAttemptsByCustomer(ctx context.Context, customerGID string, limit int) ([]domain.Attempt, error)

	// GetAttempt returns one row, or ErrNotFound.
	GetAttempt(ctx context.Context, id string) (domain.Attempt, error)
}

// SessionBackend is anything that can serve Sessions and be health checked,
// e.g. the redis driver.
type SessionBackend interface {
	Sessions
	Ping(ctx context.Context) error
	Close() error
}

// WithSessions returns a Store that serves sessions from s and everything
// else from base. Ping and Close fan out to both.
func WithSessions(base Store, s SessionBackend) Store {
	return &composite{Store: base, sessions: s}
}

type composite struct {
	Store
	sessions SessionBackend
}

func (c *composite) Sessions() Sessions { return c.sessions }

func (c *composite) Ping(ctx context.Context) error {
	if err := c.sessions.Ping(ctx); err != nil {
		return err
	}
	return c.Store.Ping(ctx)
}

func (c *composite) Close() error {
	return errors.Join(c.sessions.Close(), c.Store.Close())
}

// SessionsOf exposes the sessions of s as a SessionBackend whose health and
// lifetime are those of s.
func SessionsOf(s Store) SessionBackend {
	return sessionsOf{Sessions: s.Sessions(), owner: s}
}

type sessionsOf struct {
	Sessions
	owner Store
}

func (s sessionsOf) Ping(ctx context.Context) error { return s.owner.Ping(ctx) }
func (s sessionsOf) Close() error                   { return s.owner.Close() }

// Package memory is an in-process Store. Sessions are bounded by capacity
// with the least recently used evicted first; the attempts ledger keeps the
// newest entries up to the same capacity.
package memory

import (
	"container/list"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
)

// DefaultCapacity bounds sessions and attempts when no capacity is given.
const DefaultCapacity = 10000

type Store struct {
	sessions *sessions
	attempts *attempts
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock GetSession judges expiry by. The default is
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.sessions.now = now
		}
	}
}

// NewStore creates a store holding at most capacity sessions and capacity
// attempts. capacity <= 0 uses DefaultCapacity.
func NewStore(capacity int, opts ...Option) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		sessions: &sessions{
			capacity: capacity,
			items:    make(map[string]*list.Element),
			order:    list.New(),
			now:      time.Now,
		},
		attempts: &attempts{capacity: capacity},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Sessions() store.Sessions { return s.sessions }
func (s *Store) Attempts() store.Attempts { return s.attempts }

func (s *Store) ApplyMigrations() error         { return nil }
func (s *Store) Close() error                   { return nil }
func (s *Store) Ping(ctx context.Context) error { return nil }

type sessions struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element // values are domain.VerificationSession
	order    *list.List               // front is least recently used
	now      func() time.Time
}

func (r *sessions) CreateSession(ctx context.Context, s domain.VerificationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if el, ok := r.items[s.ID]; ok {
		el.Value = s
		r.order.MoveToBack(el)
		return nil
	}

	r.items[s.ID] = r.order.PushBack(s)
	for r.order.Len() > r.capacity {
		oldest := r.order.Front()
		r.order.Remove(oldest)
		delete(r.items, oldest.Value.(domain.VerificationSession).ID)
	}
	return nil
}

func (r *sessions) GetSession(ctx context.Context, id string) (domain.VerificationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.items[id]
	if !ok {
		return domain.VerificationSession{}, store.ErrNotFound
	}

	s := el.Value.(domain.VerificationSession)
	if s.Expired(r.now()) {
		r.order.Remove(el)
		delete(r.items, id)
		return domain.VerificationSession{}, store.ErrNotFound
	}
	r.order.MoveToBack(el)
	return s, nil
}

func (r *sessions) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for el := r.order.Front(); el != nil; {
		next := el.Next()
		if s := el.Value.(domain.VerificationSession); s.Expired(now) {
			r.order.Remove(el)
			delete(r.items, s.ID)
			n++
		}
		el = next
	}
	return n, nil
}

func (r *sessions) CountSessions(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

type attempts struct {
	mu       sync.Mutex
	capacity int
	rows     []domain.Attempt // append order
}

func (r *attempts) RecordAttempt(ctx context.Context, a domain.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rows {
		if existing.ID == a.ID {
			return store.ErrAlreadyExists
		}
	}

	a.SealedToken = slices.Clone(a.SealedToken)
	r.rows = append(r.rows, a)
	if over := len(r.rows) - r.capacity; over > 0 {
		r.rows = slices.Delete(r.rows, 0, over)
	}
	return nil
}

func (r *attempts) ListAttemptsByCustomer(ctx context.Context, customerGID string, limit int) ([]domain.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Attempt
	for i := len(r.rows) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if r.rows[i].CustomerGID == customerGID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

func (r *attempts) GetAttempt(ctx context.Context, id string) (domain.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.rows {
		if a.ID == id {
			a.SealedToken = slices.Clone(a.SealedToken)
			return a, nil
		}
	}
	return domain.Attempt{}, store.ErrNotFound
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/metrics"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
	"github.com/aussiebroadwan/ageverif/pkg/cryptox"
	"github.com/aussiebroadwan/ageverif/pkg/slogx"
)

// DefaultSessionTTL applies when SessionService.TTL is zero.
const DefaultSessionTTL = 24 * time.Hour

// CreateSessionRequest carries the optional details a shopper gives before
// starting a check.
type CreateSessionRequest struct {
	Surname     string
	OrderNumber string
	Postcode    string
}

type SessionService struct {
	Store   store.Store
	IDs     *cryptox.SessionIDGenerator
	TTL     time.Duration
	Metrics *metrics.Metrics
	Clock   Clock
}

// Create stores a new session under a fresh random id.
func (s *SessionService) Create(ctx context.Context, req CreateSessionRequest) (domain.VerificationSession, error) {
	l := slogx.FromContext(ctx)

	id, err := s.IDs.New()
	if err != nil {
		l.Error("failed to generate session id", "error", err)
		return domain.VerificationSession{}, err
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	now := s.Clock.now()
	sess := domain.VerificationSession{
		ID:          id,
		Surname:     strings.TrimSpace(req.Surname),
		OrderNumber: strings.TrimSpace(req.OrderNumber),
		Postcode:    strings.TrimSpace(req.Postcode),
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		l.Error("failed to store session", "error", err)
		return domain.VerificationSession{}, err
	}

	s.Metrics.IncSessionsCreated()
	l.Info("verification session created", "session_id", id, "has_order", sess.OrderNumber != "")
	return sess, nil
}

// Get returns ErrSessionNotFound for unknown, expired or malformed ids.
func (s *SessionService) Get(ctx context.Context, id string) (domain.VerificationSession, error) {
	if !validSessionID(id) {
		return domain.VerificationSession{}, ErrSessionNotFound
	}

	sess, err := s.Store.Sessions().GetSession(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.VerificationSession{}, ErrSessionNotFound
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load session", "error", err)
		return domain.VerificationSession{}, err
	}
	if sess.Expired(s.Clock.now()) {
		return domain.VerificationSession{}, ErrSessionNotFound
	}
	return sess, nil
}

func validSessionID(id string) bool {
	if len(id) != cryptox.SessionIDSize*2 {
		return false
	}
	for _, r := range id {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// Package redis serves verification sessions from Redis so that several
// instances share them and a restart loses nothing. Keys are
// "{namespace}:session:{id}" with a native TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/domain"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
)

// DefaultNamespace prefixes keys when none is configured.
const DefaultNamespace = "ageverif"

// Config holds connection settings.
type Config struct {
	URL          string
	Namespace    string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Sessions struct {
	client    *redis.Client
	namespace string
}

// New connects using a redis:// URL and verifies the connection.
func New(ctx context.Context, cfg Config) (*Sessions, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis: url is required")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewWithClient(client, cfg.Namespace), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, namespace string) *Sessions {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Sessions{client: client, namespace: namespace}
}

func (s *Sessions) key(id string) string {
	return fmt.Sprintf("%s:session:%s", s.namespace, id)
}

type sessionRecord struct {
	Surname     string    `json:"surname,omitempty"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	Postcode    string    `json:"postcode,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (s *Sessions) CreateSession(ctx context.Context, sess domain.VerificationSession) error {
	ttl := time.Duration(0)
	if !sess.ExpiresAt.IsZero() {
		ttl = time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			return nil
		}
	}

	payload, err := json.Marshal(sessionRecord{
		Surname:     sess.Surname,
		OrderNumber: sess.OrderNumber,
		Postcode:    sess.Postcode,
		CreatedAt:   sess.CreatedAt,
		ExpiresAt:   sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	return s.client.Set(ctx, s.key(sess.ID), payload, ttl).Err()
}

func (s *Sessions) GetSession(ctx context.Context, id string) (domain.VerificationSession, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.VerificationSession{}, store.ErrNotFound
	}
	if err != nil {
		return domain.VerificationSession{}, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.VerificationSession{}, fmt.Errorf("decode session: %w", err)
	}

	return domain.VerificationSession{
		ID:          id,
		Surname:     rec.Surname,
		OrderNumber: rec.OrderNumber,
		Postcode:    rec.Postcode,
		CreatedAt:   rec.CreatedAt,
		ExpiresAt:   rec.ExpiresAt,
	}, nil
}

// DeleteExpiredSessions is a no-op; Redis expires keys itself.
func (s *Sessions) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (s *Sessions) CountSessions(ctx context.Context) (int64, error) {
	var (
		cursor uint64
		n      int64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.namespace+":session:*", 500).Result()
		if err != nil {
			return 0, err
		}
		n += int64(len(keys))
		cursor = next
		if cursor == 0 {
			return n, nil
		}
	}
}

func (s *Sessions) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Sessions) Close() error {
	return s.client.Close()
}

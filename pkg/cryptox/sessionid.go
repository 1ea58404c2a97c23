package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	mrand "math/rand/v2"
	"sync"
	"time"
)

// SessionIDSize is the number of random bytes in a verification session id.
// Hex encoding doubles it to 32 characters.
const SessionIDSize = 16

// ErrNoSecureRandom is returned when the secure source fails and the
// insecure fallback has not been allowed.
var ErrNoSecureRandom = errors.New("cryptox: secure random source unavailable")

// SessionIDGenerator creates hex session identifiers. It always reads from
// Reader first. Only when that fails and AllowInsecureFallback is set does
// it fall back to a math/rand source, logging a warning every time.
type SessionIDGenerator struct {
	Reader                io.Reader
	AllowInsecureFallback bool
	Logger                *slog.Logger

	once     sync.Once
	mu       sync.Mutex
	fallback *mrand.Rand
}

// NewSessionIDGenerator returns a generator backed by crypto/rand.
func NewSessionIDGenerator(allowInsecureFallback bool, logger *slog.Logger) *SessionIDGenerator {
	return &SessionIDGenerator{
		Reader:                rand.Reader,
		AllowInsecureFallback: allowInsecureFallback,
		Logger:                logger,
	}
}

// New returns a fresh 32 character hex session id.
func (g *SessionIDGenerator) New() (string, error) {
	buf := make([]byte, SessionIDSize)

	reader := g.Reader
	if reader == nil {
		reader = rand.Reader
	}

	_, err := io.ReadFull(reader, buf)
	if err == nil {
		return hex.EncodeToString(buf), nil
	}

	if !g.AllowInsecureFallback {
		return "", fmt.Errorf("%w: %v", ErrNoSecureRandom, err)
	}

	g.logger().Warn("secure random source failed, using insecure fallback for session id", "error", err)
	g.fillInsecure(buf)
	return hex.EncodeToString(buf), nil
}

func (g *SessionIDGenerator) fillInsecure(buf []byte) {
	g.once.Do(func() {
		seed := uint64(time.Now().UnixNano())
		g.fallback = mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	})

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range buf {
		buf[i] = byte(g.fallback.Uint32())
	}
}

func (g *SessionIDGenerator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

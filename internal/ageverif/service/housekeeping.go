package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/metrics"
	"github.com/aussiebroadwan/ageverif/internal/ageverif/store"
)

// HousekeepingService periodically removes expired verification sessions so
// the session store does not grow without bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Interval time.Duration
	Clock    Clock

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates the worker. A non-positive interval
// defaults to 15 minutes.
func NewHousekeepingService(store store.Store, logger *slog.Logger, m *metrics.Metrics, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Metrics:  m,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one pass and returns how many sessions were removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	removed, err := s.Store.Sessions().DeleteExpiredSessions(ctx, s.Clock.now())
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
		return 0
	}

	s.Metrics.AddSessionsPurged(removed)

	remaining, err := s.Store.Sessions().CountSessions(ctx)
	if err != nil {
		s.Logger.Warn("failed to count sessions", "error", err)
	}
	s.Logger.Info("housekeeping cleanup completed", "sessions_removed", removed, "sessions_remaining", remaining)
	return removed
}

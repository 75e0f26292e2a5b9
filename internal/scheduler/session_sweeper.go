package scheduler

import (
	"context"
	"time"

	"github.com/seekmark/seekmark/internal/logger"
	"github.com/seekmark/seekmark/internal/notify"
)

const (
	// DefaultSessionTTL is the silence duration after which a session
	// is considered gone
	DefaultSessionTTL = 10 * time.Minute
)

// SessionSweeper drops hub sessions whose surface stopped reporting in.
// A surface that navigated away or was closed never unregisters, so
// the sweep is what keeps the session table bounded.
type SessionSweeper struct {
	hub      *notify.Hub
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	stopCh   chan struct{}
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(
	hub *notify.Hub,
	log logger.Logger,
	interval time.Duration,
	ttl time.Duration,
) *SessionSweeper {
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionSweeper{
		hub:      hub,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep process
func (ss *SessionSweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(ss.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ss.Sweep()
			case <-ss.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweeper
func (ss *SessionSweeper) Stop() {
	close(ss.stopCh)
}

// Sweep removes sessions that have been silent for longer than the TTL.
func (ss *SessionSweeper) Sweep() {
	removed := ss.hub.SweepStale(ss.ttl)
	if removed > 0 {
		ss.logger.Info("swept stale sessions",
			logger.Int("removed", removed),
			logger.Int("remaining", ss.hub.Len()))
	} else {
		ss.logger.Debug("no stale sessions to sweep")
	}
}

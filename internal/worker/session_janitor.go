package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/valdisnipers-collab/immuno-survey/internal/survey"
)

// SessionJanitor periodically evicts survey sessions that have been idle
// longer than the manager's TTL.
type SessionJanitor struct {
	manager  *survey.Manager
	interval time.Duration
	log      zerolog.Logger
}

// NewSessionJanitor creates a new SessionJanitor.
func NewSessionJanitor(manager *survey.Manager, interval time.Duration, log zerolog.Logger) *SessionJanitor {
	return &SessionJanitor{
		manager:  manager,
		interval: interval,
		log:      log.With().Str("component", "session_janitor").Logger(),
	}
}

// Start runs the eviction loop until the context is cancelled.
func (j *SessionJanitor) Start(ctx context.Context) {
	j.log.Info().Dur("interval", j.interval).Msg("Session janitor started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info().Msg("Session janitor stopped")
			return
		case <-ticker.C:
			evicted := j.manager.EvictExpired(time.Now())
			if evicted > 0 {
				j.log.Info().Int("evicted", evicted).Msg("Evicted idle survey sessions")
			}
		}
	}
}

package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/smklab/lms-backend/internal/service"
)

// DeadlineWorker periodically sweeps timed attempts whose deadline has
// passed and auto-submits them with whatever answers were autosaved.
// The attempt's status-guarded transition makes a sweep racing a manual
// submit harmless.
type DeadlineWorker struct {
	attempts *service.AttemptService
	interval time.Duration
	log      zerolog.Logger
}

// NewDeadlineWorker creates a new DeadlineWorker.
func NewDeadlineWorker(attempts *service.AttemptService, interval time.Duration, log zerolog.Logger) *DeadlineWorker {
	return &DeadlineWorker{
		attempts: attempts,
		interval: interval,
		log:      log.With().Str("component", "deadline_worker").Logger(),
	}
}

// Start runs the sweep loop until the context is cancelled. Call in a
// goroutine.
func (w *DeadlineWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("DeadlineWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("DeadlineWorker stopped")
			return
		case now := <-ticker.C:
			swept, err := w.attempts.SweepOverdue(ctx, now)
			if err != nil {
				if ctx.Err() == nil {
					w.log.Error().Err(err).Msg("Sweep failed")
				}
				continue
			}
			if swept > 0 {
				w.log.Info().Int("count", swept).Msg("Auto-submitted overdue attempts")
			}
		}
	}
}

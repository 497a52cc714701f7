// Package scheduler invokes the batch driver on a fixed interval,
// independent of the HTTP trigger. Overlap between the two is absorbed by
// the pipeline's own reentrancy guard.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"deedflow/internal/logger"
)

// Runner triggers one batch pass over pending documents.
type Runner interface {
	ProcessPending(ctx context.Context) error
}

// Scheduler runs the batch driver on a ticker.
type Scheduler struct {
	interval time.Duration
	runner   Runner
	log      zerolog.Logger
}

// New creates a scheduler firing at the given interval.
func New(interval time.Duration, runner Runner) *Scheduler {
	return &Scheduler{
		interval: interval,
		runner:   runner,
		log:      logger.WithComponent("scheduler"),
	}
}

// Run fires the batch driver on every tick until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("Scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Scheduler stopped")
			return
		case <-ticker.C:
			if err := s.runner.ProcessPending(ctx); err != nil {
				s.log.Error().Err(err).Msg("Scheduled batch pass failed")
			}
		}
	}
}

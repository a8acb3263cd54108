// Package scheduler runs the periodic background jobs, currently the
// report cache warm-up.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/zhanel/coursehub/internal/app/services"
)

// Scheduler owns the cron runner.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// New creates a scheduler with the report warm-up job registered on the
// given cron spec (e.g. "@every 5m").
func New(statsService services.StatsService, warmSpec string, lgr zerolog.Logger) (*Scheduler, error) {
	c := cron.New()

	_, err := c.AddFunc(warmSpec, func() {
		lgr.Debug().Msg("Warming report cache")
		statsService.WarmCache(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid report warm-up schedule %q: %w", warmSpec, err)
	}

	return &Scheduler{cron: c, logger: lgr}, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Scheduler started")
}

// Stop halts the runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Scheduler stopped")
}

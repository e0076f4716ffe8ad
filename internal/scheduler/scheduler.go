// Package scheduler triggers the card expiry sweep on a fixed schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rudenman/Bank-REST/internal/service"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the expiry sweep on a cron schedule (daily by default).
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// New creates a scheduler that runs the expiry sweep per the cron spec,
// e.g. "0 12 * * *" for every day at noon.
func New(expiry *service.CardExpiryService, log *logrus.Logger, spec string) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := expiry.MarkExpired(context.Background()); err != nil {
			log.Errorf("Scheduled expiry sweep failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule expiry sweep: %w", err)
	}
	return &Scheduler{cron: c, log: log}, nil
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Expiry sweep scheduler started")
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Expiry sweep scheduler stopped")
}

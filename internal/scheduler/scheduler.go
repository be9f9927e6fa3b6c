package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reloader rebuilds the dataset snapshot
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler reloads the dataset on a cron schedule
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

// New registers a reload job for spec, a standard five-field cron expression
// or a descriptor such as "@every 1h". Overlapping runs are skipped.
func New(spec string, r Reloader, log *logrus.Logger, timeout time.Duration) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	s := &Scheduler{cron: c, timeout: timeout}

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := r.Reload(ctx); err != nil {
			log.Warnf("Scheduled reload failed: %v", err)
			return
		}
		log.Debug("Scheduled reload finished")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and returns a context done when running jobs finish
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Next returns the next planned run
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if next := entries[0].Next; !next.IsZero() {
		return next
	}
	return entries[0].Schedule.Next(time.Now())
}

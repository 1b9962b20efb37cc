package syncworker

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/dmitrijs2005/housekeeper/internal/logging"
)

// Job is one sync attempt.
type Job func(ctx context.Context) (Report, error)

// Probe reports whether the remote is reachable.
type Probe func(ctx context.Context) error

type SchedulerConfig struct {
	// Interval is the period of unattended runs.
	Interval time.Duration
	// InitialBackoff and MaxBackoff bound the retry delay after a failed run.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Scheduler runs a Job periodically, on Trigger, and again with exponential
// backoff while runs keep failing.
type Scheduler struct {
	name    string
	job     Job
	probe   Probe
	cfg     SchedulerConfig
	logger  logging.Logger
	trigger chan struct{}
	results chan Result
}

// Result is delivered after each run when a listener is attached.
type Result struct {
	Report Report
	Err    error
}

func NewScheduler(name string, job Job, probe Probe, cfg SchedulerConfig, logger logging.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 5 * time.Second
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = cfg.InitialBackoff
	}
	return &Scheduler{
		name:    name,
		job:     job,
		probe:   probe,
		cfg:     cfg,
		logger:  logger.With("scheduler", name),
		trigger: make(chan struct{}, 1),
		results: make(chan Result, 1),
	}
}

// Trigger requests a run as soon as possible. Requests made while one is
// already pending are coalesced.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Results delivers run outcomes. Only the latest unread outcome is kept.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// Start blocks until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.cfg.InitialBackoff
	exp.MaxInterval = s.cfg.MaxBackoff
	exp.Multiplier = 2
	exp.MaxElapsedTime = 0
	exp.Reset()

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	s.logger.Info(ctx, "scheduler started", "interval", s.cfg.Interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "scheduler stopped")
			return
		case <-timer.C:
		case <-s.trigger:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}

		next := s.cfg.Interval
		if err := s.runOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			next = exp.NextBackOff()
			s.logger.Warn(ctx, "run failed, retrying", "in", next, "error", err)
		} else {
			exp.Reset()
		}
		timer.Reset(next)
	}
}

func (s *Scheduler) runOnce(ctx context.Context) error {
	if s.probe != nil {
		if err := s.probe(ctx); err != nil {
			s.publish(Result{Err: err})
			return err
		}
	}
	report, err := s.job(ctx)
	s.publish(Result{Report: report, Err: err})
	return err
}

func (s *Scheduler) publish(r Result) {
	select {
	case <-s.results:
	default:
	}
	select {
	case s.results <- r:
	default:
	}
}

// Package refresh periodically rebuilds the post cache.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	ferrors "git.home.luguber.info/inful/blogcontent/internal/foundation/errors"
	"git.home.luguber.info/inful/blogcontent/internal/logfields"
	"git.home.luguber.info/inful/blogcontent/internal/retry"
)

// Target is what the scheduler refreshes; *posts.Cache satisfies it.
type Target interface {
	Invalidate()
	Warm(ctx context.Context) error
}

// Scheduler wraps a gocron scheduler running the refresh job.
type Scheduler struct {
	scheduler gocron.Scheduler
	target    Target
	logger    *slog.Logger
	timeout   time.Duration
	policy    retry.Policy
}

// NewScheduler creates a scheduler for target.
func NewScheduler(target Target, logger *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: s,
		target:    target,
		logger:    logger,
		timeout:   time.Minute,
		policy:    retry.NewPolicy(retry.BackoffLinear, 0, 0, 0),
	}, nil
}

// WithRetry sets the backoff applied when a refresh fails with a retryable error.
func (s *Scheduler) WithRetry(p retry.Policy) *Scheduler {
	s.policy = p
	return s
}

// ScheduleRefresh registers a job refreshing the target every interval and
// returns its id.
func (s *Scheduler) ScheduleRefresh(interval time.Duration) (string, error) {
	if interval <= 0 {
		return "", ferrors.ValidationError("refresh interval must be positive").
			WithContext("interval", interval.String()).
			Build()
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.runScheduled),
		gocron.WithName("content-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create refresh job: %w", err)
	}
	return job.ID().String(), nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("Starting refresh scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping refresh scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_ = s.Refresh(ctx)
}

// Refresh drops the cached posts and loads them again.
func (s *Scheduler) Refresh(ctx context.Context) error {
	start := time.Now()
	s.target.Invalidate()
	retries, err := s.policy.Do(ctx, s.target.Warm)
	if err != nil {
		s.logger.Error("Scheduled content refresh failed",
			logfields.Error(err), slog.Int("retries", retries))
		return err
	}
	s.logger.Debug("Content refreshed",
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
		slog.Int("retries", retries))
	return nil
}

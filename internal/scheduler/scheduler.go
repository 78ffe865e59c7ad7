// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// FeaturedRefresher reloads the featured listings cache.
type FeaturedRefresher interface {
	RefreshFeatured(ctx context.Context) (int, error)
}

// jobTimeout bounds a single cache refresh.
const jobTimeout = 30 * time.Second

// Scheduler owns the cron runner. Runs of the same job never overlap.
type Scheduler struct {
	cron      *cron.Cron
	refresher FeaturedRefresher
	logger    *slog.Logger
}

// New builds a scheduler that refreshes the featured cache on schedule, a
// standard five-field cron expression or a descriptor such as "@every 4m".
func New(schedule string, refresher FeaturedRefresher, logger *slog.Logger) (*Scheduler, error) {
	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(cron.WithLogger(cl), cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		refresher: refresher,
		logger:    logger,
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.refreshFeatured(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule featured refresh %q: %w", schedule, err)
	}
	return s, nil
}

// Start warms the cache once and then runs jobs in the background.
func (s *Scheduler) Start(ctx context.Context) {
	s.refreshFeatured(ctx)
	s.cron.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.cron.Entries())))
}

// Stop prevents new runs and waits for a running job or ctx, whichever
// finishes first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) refreshFeatured(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.refresher.RefreshFeatured(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "featured cache refresh failed", slog.String("error", err.Error()))
		return
	}
	s.logger.DebugContext(ctx, "featured cache refreshed",
		slog.Int("count", n),
		slog.Duration("duration", time.Since(start)),
	)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// Package scheduler drives the periodic matching runs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"geosynth/config"
	"geosynth/internal/delivery"
	"geosynth/internal/usecase"

	"go.uber.org/fx"
)

type matcherScheduler struct {
	interval time.Duration
	logger   *slog.Logger
	matcher  usecase.MatcherUsecase
	stop     chan struct{}
}

// SchedulerParams holds dependencies for the matcher scheduler
type SchedulerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Logger  *slog.Logger
	Matcher usecase.MatcherUsecase
}

// NewScheduler creates the periodic matcher runner
func NewScheduler(params SchedulerParams) (delivery.Delivery, error) {
	sched := &matcherScheduler{
		interval: params.Cfg.Matcher.Interval,
		logger:   params.Logger,
		matcher:  params.Matcher,
		stop:     make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			close(sched.stop)

			return nil
		},
	})

	return sched, nil
}

// Serve runs matching rounds until the context is canceled. The first round
// starts immediately, later rounds follow the configured interval.
func (s *matcherScheduler) Serve(ctx context.Context) error {
	s.logger.Info("Starting matcher scheduler",
		slog.Duration("interval", s.interval),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runRound(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Matcher scheduler stopped", slog.Any("reason", ctx.Err()))

			return nil
		case <-s.stop:
			s.logger.Info("Matcher scheduler stopped")

			return nil
		case <-ticker.C:
			s.runRound(ctx)
		}
	}
}

// runRound executes one matching pass. Failures are logged and the next
// tick retries; the scheduler itself never dies on a round error.
func (s *matcherScheduler) runRound(ctx context.Context) {
	start := time.Now()

	matched, err := s.matcher.RunOnce(ctx)
	if err != nil {
		s.logger.Error("matching round failed",
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)),
		)

		return
	}

	s.logger.Info("matching round completed",
		slog.Int("matches", matched),
		slog.Duration("elapsed", time.Since(start)),
	)
}

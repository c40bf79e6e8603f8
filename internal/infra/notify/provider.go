package notify

import (
	"context"
	"log/slog"

	"geosynth/config"
	"geosynth/internal/domain/service"

	"go.uber.org/fx"
)

// noopNotifier is a no-op implementation when delivery is not configured
type noopNotifier struct {
	logger *slog.Logger
}

func (n *noopNotifier) PublishMatch(_ context.Context, event *service.MatchEvent) error {
	n.logger.Debug("match delivery disabled, skipping",
		slog.String("match_id", event.MatchID),
	)

	return nil
}

func (n *noopNotifier) Close() error {
	return nil
}

// NotifierParams holds dependencies for Notifier, injected by Fx
type NotifierParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewNotifier creates a Notifier based on configuration
func NewNotifier(params NotifierParams) (service.Notifier, error) {
	cfg := params.Config.Notify
	logger := params.Logger

	if cfg == nil || cfg.Endpoint == "" {
		logger.Info("match delivery not configured, using no-op notifier")

		return &noopNotifier{logger: logger}, nil
	}

	logger.Info("using HTTP notifier for match delivery",
		slog.String("endpoint", cfg.Endpoint),
	)
	notifier := NewHTTPNotifier(cfg.Endpoint, logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("closing Notifier")

			return notifier.Close()
		},
	})

	return notifier, nil
}

// Module provides the notify FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewNotifier),
)

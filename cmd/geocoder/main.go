package main

import (
	"context"
	"log/slog"
	"os"

	"geosynth/config"
	"geosynth/internal/delivery"
	"geosynth/internal/delivery/worker"
	"geosynth/internal/delivery/worker/handler"
	logs "geosynth/internal/infra/log"
	"geosynth/internal/infra/persistence/postgres"
	"geosynth/internal/infra/provider"
	"geosynth/internal/usecase"
	"geosynth/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectProvider(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewGeometryRepository,
		),
	)
}

func injectProvider() fx.Option {
	return fx.Options(
		fx.Provide(
			newAddressResolver,
			newRoadNetwork,
			newIntersectionResolver,
		),
	)
}

// serviceBounds converts the configured service area into provider bounds
func serviceBounds(cfg *config.Config) provider.Bounds {
	return provider.Bounds{
		MinLat: cfg.ServiceArea.MinLat,
		MinLng: cfg.ServiceArea.MinLng,
		MaxLat: cfg.ServiceArea.MaxLat,
		MaxLng: cfg.ServiceArea.MaxLng,
	}
}

// newAddressResolver creates the forward geocoder for pin addresses
func newAddressResolver(cfg *config.Config, logger *slog.Logger) provider.AddressResolver {
	return provider.NewForwardGeocoder(provider.GeocodeConfig{
		Endpoint: cfg.Providers.Geocode.Endpoint,
		APIKey:   cfg.Providers.Geocode.APIKey,
		Locality: cfg.ServiceArea.Name,
		Bounds:   serviceBounds(cfg),
		MinDelay: cfg.Providers.Geocode.MinDelay,
		Timeout:  cfg.Providers.Geocode.Timeout,
	}, provider.NewCache(), logger)
}

// newRoadNetwork creates the mirrored road network source
func newRoadNetwork(cfg *config.Config, logger *slog.Logger) provider.RoadNetwork {
	return provider.NewOverpassNetwork(provider.RoadNetworkConfig{
		Mirrors:  cfg.Providers.RoadNetwork.Mirrors,
		Bounds:   serviceBounds(cfg),
		MinDelay: cfg.Providers.RoadNetwork.MinDelay,
		Timeout:  cfg.Providers.RoadNetwork.Timeout,
	}, logger)
}

// newIntersectionResolver selects the intersection provider for the street
// endpoint slot; an unknown value fails at startup
func newIntersectionResolver(
	cfg *config.Config,
	addresses provider.AddressResolver,
	streets usecase.StreetGeometryUsecase,
	logger *slog.Logger,
) (provider.IntersectionResolver, error) {
	switch cfg.Geocoding.IntersectionProvider {
	case "routing":
		return provider.NewRoutingResolver(provider.RoutingConfig{
			Endpoint: cfg.Providers.Routing.Endpoint,
			APIKey:   cfg.Providers.Routing.APIKey,
			Locality: cfg.ServiceArea.Name,
			Bounds:   serviceBounds(cfg),
			MinDelay: cfg.Providers.Routing.MinDelay,
			Timeout:  cfg.Providers.Routing.Timeout,
		}, provider.NewCache(), addresses, logger), nil
	case "network", "":
		return streets, nil
	default:
		return nil, errors.Errorf("unknown intersection provider: %s", cfg.Geocoding.IntersectionProvider)
	}
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewStreetResolver,
			impl.NewGeocodingService,
			impl.NewSynthesisService,
			impl.NewExtractionService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewExtractionHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/frolf-broadcast/app/eventbus"
	"github.com/Black-And-White-Club/frolf-broadcast/app/metrics"
	"github.com/Black-And-White-Club/frolf-broadcast/app/modules/coordinator"
	leaderboarddomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/leaderboard/domain"
	protocolservice "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/application"
	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
	"github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/infrastructure/transport"
	scoringservice "github.com/Black-And-White-Club/frolf-broadcast/app/modules/scoring/application"
	scoringclient "github.com/Black-And-White-Club/frolf-broadcast/app/modules/scoring/infrastructure/client"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
	"github.com/Black-And-White-Club/frolf-broadcast/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// App holds every long-running component of the broadcast driver.
type App struct {
	Config      *config.Config
	Logger      *slog.Logger
	Registry    *prometheus.Registry
	EventBus    shared.EventBus
	Transport   protocolservice.Transport
	Queue       *protocolservice.Queue
	Coordinator *coordinator.Coordinator
	Reconciler  *scoringservice.Reconciler
	Cycle       *coordinator.LeaderboardCycle

	server        *http.Server
	metricsServer *http.Server
	tracer        trace.Tracer
}

// NewApp connects to the production system, loads the event and puts the
// configured player on air. A nil tracer uses the global provider.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, tracer trace.Tracer) (*App, error) {
	if tracer == nil {
		tracer = otel.Tracer("github.com/Black-And-White-Club/frolf-broadcast")
	}
	mode, err := leaderboarddomain.ParseMode(cfg.Broadcast.LeaderboardMode)
	if err != nil {
		return nil, &shared.ConfigurationError{Component: "broadcast.leaderboard_mode", Err: err}
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: metrics.NewRegistry(),
		tracer:   tracer,
	}

	app.Transport, err = newTransport(ctx, cfg.Production, logger)
	if err != nil {
		return nil, err
	}
	app.Queue = protocolservice.NewQueue(app.Transport, cfg.Production.QueueSize, logger, metrics.NewQueueMetrics(app.Registry))
	app.EventBus = eventbus.NewEventBus(logger)

	scoring := scoringclient.New(scoringclient.Config{
		Endpoint:  cfg.Scoring.Endpoint,
		Timeout:   cfg.Scoring.Timeout,
		RateLimit: cfg.Scoring.RateLimit,
	}, logger)

	app.Coordinator, err = coordinator.New(ctx, coordinator.Deps{
		Scoring: scoring,
		Queue:   app.Queue,
		Logger:  logger,
		Metrics: metrics.NewCoordinatorMetrics(app.Registry),
		Tracer:  tracer,
	}, coordinator.Options{
		EventID:       cfg.Scoring.EventID,
		FocusedPlayer: cfg.Broadcast.FocusedPlayer,
		Round:         cfg.Broadcast.Round - 1,
		FeaturedHole:  cfg.Broadcast.FeaturedHole,
		Mode:          mode,
		AssetsDir:     cfg.Production.AssetsDir,
	})
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("failed to load broadcast: %w", err)
	}

	app.Reconciler = scoringservice.NewReconciler(
		scoring,
		app.Coordinator,
		app.EventBus,
		nil,
		logger,
		metrics.NewReconcilerMetrics(app.Registry),
		tracer,
		scoringservice.Options{EventID: cfg.Scoring.EventID, Interval: cfg.Scoring.PollInterval},
	)
	for _, round := range app.Coordinator.LoadedRounds() {
		app.Reconciler.Track(round)
	}

	app.Cycle = coordinator.NewLeaderboardCycle(app.Coordinator, app.EventBus, nil, logger, cfg.Scoring.CycleInterval)

	app.server, app.metricsServer = app.newServers()
	return app, nil
}

func newTransport(ctx context.Context, cfg config.ProductionConfig, logger *slog.Logger) (protocolservice.Transport, error) {
	encoder := protocoldomain.NewEncoder(cfg.Targets)
	switch cfg.Transport {
	case config.TransportHTTP:
		logger.InfoContext(ctx, "Using production HTTP transport", slog.String("host", cfg.Host))
		return transport.NewHTTPTransport(transport.HTTPBaseURL(cfg.Host), encoder, cfg.Timeout), nil
	case config.TransportTCP:
		return transport.DialTCP(ctx, transport.TCPAddress(cfg.Host), encoder, logger)
	default:
		return nil, &shared.ConfigurationError{Component: "production.transport", Err: fmt.Errorf("unknown transport %q", cfg.Transport)}
	}
}

// Package pubsub publishes catalog lifecycle events to Google Pub/Sub or to a local push endpoint.
package pubsub

import (
	"context"
	"log/slog"
	"time"

	"toolbox/config"
	"toolbox/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Supported publisher providers.
const (
	ProviderNone   = "none"
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// publishTimeout bounds a single publish; events are sent after the request's transaction
// commits and must not hold the response open.
const publishTimeout = 5 * time.Second

// noopPublisher drops events when no provider is configured.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishCatalogEvent(ctx context.Context, event *service.CatalogEvent) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping catalog event",
		slog.String("event_type", string(event.Type)),
		slog.String("service_id", event.ServiceID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// boundedPublisher applies publishTimeout to every publish of the wrapped publisher.
type boundedPublisher struct {
	service.EventPublisher
	timeout time.Duration
}

func (p *boundedPublisher) PublishCatalogEvent(ctx context.Context, event *service.CatalogEvent) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.EventPublisher.PublishCatalogEvent(ctx, event)
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher selects the publisher named by pubsub.provider. An empty or "none"
// provider yields a publisher that drops events.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == ProviderNone {
		logger.Info("Catalog events disabled")

		return &noopPublisher{logger: logger}, nil
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	var publisher service.EventPublisher
	switch cfg.Provider {
	case ProviderLocal:
		logger.Info("Publishing catalog events to local push endpoint", slog.String("endpoint", cfg.LocalEndpoint))
		publisher = NewLocalHTTPPublisher(cfg.LocalEndpoint, logger)

	case ProviderGoogle:
		logger.Info("Publishing catalog events to Google Pub/Sub",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		var err error
		publisher, err = NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing catalog event publisher")

			return publisher.Close()
		},
	})

	return &boundedPublisher{EventPublisher: publisher, timeout: publishTimeout}, nil
}

func validateConfig(cfg *config.PubSubConfig) error {
	switch cfg.Provider {
	case ProviderLocal:
		if cfg.LocalEndpoint == "" {
			return errors.New("local endpoint is required for local provider")
		}
	case ProviderGoogle:
		if cfg.ProjectID == "" {
			return errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return errors.New("topic ID is required for google provider")
		}
	default:
		return errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	return nil
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)

// Package eventbus carries domain events between use cases over an in-process watermill pub/sub.
package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/tournament-hub/internal/domain/event"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
)

const (
	defaultMaxRetries      = 3
	defaultInitialInterval = 100 * time.Millisecond
	defaultBuffer          = 256
	closeTimeout           = 10 * time.Second

	handlerRecomputeQualification = "qualification.recompute"
)

type Config struct {
	MaxRetries      int
	InitialInterval time.Duration
	Buffer          int64
	// Registry enables watermill router metrics when set.
	Registry prometheus.Registerer
}

// Bus publishes StandingUpdated events and runs their consumers.
type Bus struct {
	pubsub *gochannel.GoChannel
	router *message.Router
	logger *logging.Logger
}

func New(cfg Config, logger *logging.Logger) (*Bus, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("eventbus")
	adapter := newLoggerAdapter(logger)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	} else if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	interval := cfg.InitialInterval
	if interval <= 0 {
		interval = defaultInitialInterval
	}
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, adapter)
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: closeTimeout}, adapter)
	if err != nil {
		return nil, fmt.Errorf("create event router: %w", err)
	}

	if cfg.Registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(cfg.Registry, "tournament_hub", "events")
		builder.AddPrometheusRouterMetrics(router)
	}

	b := &Bus{pubsub: pubsub, router: router, logger: logger}
	router.AddMiddleware(
		b.dropExhausted,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      maxRetries,
			InitialInterval: interval,
			MaxInterval:     interval * 10,
			Multiplier:      2,
			Logger:          adapter,
		}.Middleware,
	)
	return b, nil
}

// PublishStandingUpdated implements event.Publisher.
func (b *Bus) PublishStandingUpdated(ctx context.Context, evt event.StandingUpdated) error {
	payload, err := sonic.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.TopicStandingUpdated, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("group_id", evt.GroupID)
	// The consumer outlives the request that published the event.
	msg.SetContext(context.WithoutCancel(ctx))
	if err := b.pubsub.Publish(event.TopicStandingUpdated, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.TopicStandingUpdated, err)
	}
	return nil
}

// StandingUpdatedHandler consumes one StandingUpdated event.
type StandingUpdatedHandler func(ctx context.Context, evt event.StandingUpdated) error

// OnStandingUpdated registers the qualification consumer. Call before Run.
func (b *Bus) OnStandingUpdated(handler StandingUpdatedHandler) {
	b.router.AddNoPublisherHandler(
		handlerRecomputeQualification,
		event.TopicStandingUpdated,
		b.pubsub,
		func(msg *message.Message) error {
			var evt event.StandingUpdated
			if err := sonic.Unmarshal(msg.Payload, &evt); err != nil {
				b.logger.Error("drop undecodable standing event", "message_id", msg.UUID, "error", err)
				return nil
			}
			return handler(msg.Context(), evt)
		},
	)
}

// Run blocks until ctx is cancelled or the router is closed.
func (b *Bus) Run(ctx context.Context) error {
	return b.router.Run(ctx)
}

// Running is closed once every handler is subscribed.
func (b *Bus) Running() chan struct{} {
	return b.router.Running()
}

func (b *Bus) Close() error {
	if err := b.router.Close(); err != nil {
		return err
	}
	return b.pubsub.Close()
}

// dropExhausted acks messages whose retries ran out so the in-process channel does not redeliver forever.
func (b *Bus) dropExhausted(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		produced, err := h(msg)
		if err != nil {
			b.logger.ErrorContext(msg.Context(), "event handler failed after retries",
				"message_id", msg.UUID,
				"group_id", msg.Metadata.Get("group_id"),
				"error", err,
			)
			return nil, nil
		}
		return produced, nil
	}
}

var _ event.Publisher = (*Bus)(nil)

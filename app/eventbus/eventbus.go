package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const outputBuffer = 64

// eventBus implements the shared.EventBus interface on an in-memory pub/sub.
type eventBus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewEventBus creates an in-process EventBus.
func NewEventBus(logger *slog.Logger) shared.EventBus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: outputBuffer},
		watermill.NewSlogLogger(logger),
	)
	return &eventBus{pubsub: pubsub, logger: logger}
}

func (eb *eventBus) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	msg.Metadata.Set("topic", topic)

	eb.logger.DebugContext(ctx, "Publishing message",
		slog.String("topic", topic),
		slog.String("message_id", msg.UUID),
	)

	if err := eb.pubsub.Publish(topic, msg); err != nil {
		eb.logger.ErrorContext(ctx, "Failed to publish message",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string, handler func(ctx context.Context, msg *message.Message) error) error {
	messages, err := eb.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	eb.logger.InfoContext(ctx, "Subscription started", slog.String("topic", topic))

	// Signals are not redelivered: a nacked message would be resent to the
	// same handler immediately.
	go func() {
		for msg := range messages {
			if err := handler(ctx, msg); err != nil {
				eb.logger.ErrorContext(ctx, "Handler error",
					slog.String("topic", topic),
					slog.String("message_id", msg.UUID),
					slog.Any("error", err),
				)
			}
			msg.Ack()
		}
	}()

	return nil
}

// Close stops every subscription.
func (eb *eventBus) Close() error {
	if err := eb.pubsub.Close(); err != nil {
		eb.logger.Error("Error closing pub/sub", slog.Any("error", err))
		return err
	}
	return nil
}

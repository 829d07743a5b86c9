package shared

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBus carries in-process signals between background tasks.
type EventBus interface {
	// Publish marshals payload as JSON and publishes it on topic.
	Publish(ctx context.Context, topic string, payload any) error

	// Subscribe runs handler for every message on topic until ctx is done.
	Subscribe(ctx context.Context, topic string, handler func(ctx context.Context, msg *message.Message) error) error

	Close() error
}

package protocolservice

import (
	"context"
	"errors"
	"log/slog"

	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
)

// DefaultQueueSize bounds the number of commands waiting for delivery.
const DefaultQueueSize = 2048

// Transport delivers a single command and returns the production system's reply.
type Transport interface {
	Send(ctx context.Context, cmd protocoldomain.Command) (protocoldomain.Response, error)
	Close() error
}

// Queue is the ordered delivery channel to the production system. Any number of
// producers may Enqueue; a single Run loop applies commands in enqueue order.
type Queue struct {
	commands  chan protocoldomain.Command
	transport Transport
	logger    *slog.Logger
	metrics   Metrics
}

// NewQueue creates a queue in front of transport. size <= 0 uses DefaultQueueSize.
func NewQueue(transport Transport, size int, logger *slog.Logger, metrics Metrics) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if metrics == nil {
		metrics = NoOpMetrics{}
	}
	return &Queue{
		commands:  make(chan protocoldomain.Command, size),
		transport: transport,
		logger:    logger,
		metrics:   metrics,
	}
}

// Enqueue appends commands without blocking. Commands that do not fit are
// dropped and logged. It returns the number of commands accepted.
func (q *Queue) Enqueue(cmds ...protocoldomain.Command) int {
	accepted := 0
	for _, cmd := range cmds {
		select {
		case q.commands <- cmd:
			accepted++
		default:
			q.metrics.RecordDropped()
			q.logger.Error("Command queue full, dropping command",
				slog.String("operation", string(cmd.Op)),
				slog.Int("capacity", cap(q.commands)),
			)
		}
	}
	q.metrics.RecordEnqueued(accepted)
	q.metrics.SetDepth(len(q.commands))
	return accepted
}

// Pending returns the number of commands waiting for delivery.
func (q *Queue) Pending() int {
	return len(q.commands)
}

// Run delivers commands until ctx is cancelled. Negative replies and transport
// failures are logged and never stop the loop.
func (q *Queue) Run(ctx context.Context) error {
	q.logger.InfoContext(ctx, "Command queue started", slog.Int("capacity", cap(q.commands)))
	for {
		select {
		case <-ctx.Done():
			q.logger.InfoContext(ctx, "Command queue stopped", slog.Int("pending", len(q.commands)))
			return nil
		case cmd := <-q.commands:
			q.metrics.SetDepth(len(q.commands))
			q.deliver(ctx, cmd)
		}
	}
}

func (q *Queue) deliver(ctx context.Context, cmd protocoldomain.Command) {
	resp, err := q.transport.Send(ctx, cmd)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		q.metrics.RecordSent(StatusFailed)
		q.logger.ErrorContext(ctx, "Failed to deliver command",
			slog.String("operation", string(cmd.Op)),
			slog.Any("error", err),
		)
		return
	}

	if !resp.OK {
		q.metrics.RecordSent(StatusRejected)
		perr := &protocoldomain.ProtocolError{Command: string(cmd.Op), Message: resp.Message}
		q.logger.WarnContext(ctx, "Production system rejected command",
			slog.String("operation", string(cmd.Op)),
			slog.Any("error", perr),
		)
		return
	}

	q.metrics.RecordSent(StatusOK)
}

// Close releases the transport.
func (q *Queue) Close() error {
	return q.transport.Close()
}

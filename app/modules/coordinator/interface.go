package coordinator

import (
	"context"
	"time"

	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
	scoringclient "github.com/Black-And-White-Club/frolf-broadcast/app/modules/scoring/infrastructure/client"
)

// Scoring is the part of the scoring API the coordinator loads an event from.
type Scoring interface {
	Rounds(ctx context.Context, eventID string) ([]scoringclient.Round, error)
	Groups(ctx context.Context, eventID string) ([]scoringclient.Group, error)
	Layout(ctx context.Context, eventID string) ([]scoringclient.Hole, []scoringclient.Division, error)
	Results(ctx context.Context, eventID, roundID string) ([]scoringclient.PlayerResult, error)
}

// Enqueuer accepts command batches for delivery to the production system.
type Enqueuer interface {
	Enqueue(cmds ...protocoldomain.Command) int
}

// Metrics records coordinator operations.
type Metrics interface {
	RecordOperation(operation, result string)
	ObserveOperationDuration(operation string, d time.Duration)
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperation(string, string)                 {}
func (NoOpMetrics) ObserveOperationDuration(string, time.Duration) {}

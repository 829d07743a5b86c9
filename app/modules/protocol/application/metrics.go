package protocolservice

// Delivery outcomes recorded per command.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
	StatusFailed   = "failed"
)

// Metrics records command queue activity.
type Metrics interface {
	RecordEnqueued(n int)
	RecordDropped()
	RecordSent(status string)
	SetDepth(n int)
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordEnqueued(int) {}
func (NoOpMetrics) RecordDropped()     {}
func (NoOpMetrics) RecordSent(string)  {}
func (NoOpMetrics) SetDepth(int)       {}

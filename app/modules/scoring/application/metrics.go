package scoringservice

import "time"

// Poll outcomes.
const (
	PollUnchanged  = "unchanged"
	PollChanged    = "changed"
	PollFetchError = "fetch_error"
	PollMergeError = "merge_error"
)

// Metrics records reconciler activity.
type Metrics interface {
	RecordPoll(result string)
	ObservePollDuration(d time.Duration)
	RecordChangedPlayers(n int)
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordPoll(string)                 {}
func (NoOpMetrics) ObservePollDuration(time.Duration) {}
func (NoOpMetrics) RecordChangedPlayers(int)          {}

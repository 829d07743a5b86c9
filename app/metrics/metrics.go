package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "frolf_broadcast"

// NewRegistry creates a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// QueueMetrics instruments the production command queue.
type QueueMetrics struct {
	enqueued prometheus.Counter
	dropped  prometheus.Counter
	sent     *prometheus.CounterVec
	depth    prometheus.Gauge
}

// NewQueueMetrics registers the command queue collectors on reg.
func NewQueueMetrics(reg prometheus.Registerer) *QueueMetrics {
	m := &QueueMetrics{
		enqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "command_queue",
			Name:      "enqueued_total",
			Help:      "Commands accepted by the queue.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "command_queue",
			Name:      "dropped_total",
			Help:      "Commands dropped because the queue was full.",
		}),
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "command_queue",
			Name:      "sent_total",
			Help:      "Commands delivered to the production system by reply status.",
		}, []string{"status"}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "command_queue",
			Name:      "depth",
			Help:      "Commands waiting for delivery.",
		}),
	}
	reg.MustRegister(m.enqueued, m.dropped, m.sent, m.depth)
	return m
}

func (m *QueueMetrics) RecordEnqueued(n int)     { m.enqueued.Add(float64(n)) }
func (m *QueueMetrics) RecordDropped()           { m.dropped.Inc() }
func (m *QueueMetrics) RecordSent(status string) { m.sent.WithLabelValues(status).Inc() }
func (m *QueueMetrics) SetDepth(n int)           { m.depth.Set(float64(n)) }

// ReconcilerMetrics instruments the score reconciler.
type ReconcilerMetrics struct {
	polls    *prometheus.CounterVec
	duration prometheus.Histogram
	changed  prometheus.Counter
}

// NewReconcilerMetrics registers the reconciler collectors on reg.
func NewReconcilerMetrics(reg prometheus.Registerer) *ReconcilerMetrics {
	m := &ReconcilerMetrics{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconciler",
			Name:      "polls_total",
			Help:      "Result polls by outcome.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reconciler",
			Name:      "poll_duration_seconds",
			Help:      "Time spent fetching and merging one round.",
			Buckets:   prometheus.DefBuckets,
		}),
		changed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconciler",
			Name:      "changed_players_total",
			Help:      "Players whose results changed.",
		}),
	}
	reg.MustRegister(m.polls, m.duration, m.changed)
	return m
}

func (m *ReconcilerMetrics) RecordPoll(result string)            { m.polls.WithLabelValues(result).Inc() }
func (m *ReconcilerMetrics) ObservePollDuration(d time.Duration) { m.duration.Observe(d.Seconds()) }
func (m *ReconcilerMetrics) RecordChangedPlayers(n int)          { m.changed.Add(float64(n)) }

// CoordinatorMetrics instruments production operations.
type CoordinatorMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewCoordinatorMetrics registers the coordinator collectors on reg.
func NewCoordinatorMetrics(reg prometheus.Registerer) *CoordinatorMetrics {
	m := &CoordinatorMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coordinator",
			Name:      "operations_total",
			Help:      "Production operations by name and outcome.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "coordinator",
			Name:      "operation_duration_seconds",
			Help:      "Time spent holding the state lock per operation.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5},
		}, []string{"operation"}),
	}
	reg.MustRegister(m.operations, m.duration)
	return m
}

func (m *CoordinatorMetrics) RecordOperation(operation, result string) {
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *CoordinatorMetrics) ObserveOperationDuration(operation string, d time.Duration) {
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for subscribe attempts.
const (
	OutcomeCreated  = "created"
	OutcomeExisting = "existing"
	OutcomeFailed   = "failed"
)

// Metrics provides observability for the subscription registry.
type Metrics struct {
	Subscribes        *prometheus.CounterVec
	SubscribeDuration prometheus.Histogram
	LockWait          prometheus.Histogram
}

// New registers the subscription metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Subscribes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pushgraph_subscribes_total",
			Help: "Subscribe attempts by outcome",
		}, []string{"outcome"}),
		SubscribeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pushgraph_subscribe_duration_seconds",
			Help:    "Duration of Subscribe including feed discovery and the hub call",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LockWait: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pushgraph_subscribe_lock_wait_seconds",
			Help:    "Time spent waiting for the per subscriber/topic lock",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
		}),
	}
}

// IncrementSubscribe records a subscribe outcome.
func (m *Metrics) IncrementSubscribe(outcome string) {
	m.Subscribes.WithLabelValues(outcome).Inc()
}

// ObserveSubscribe records the duration of a Subscribe call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSubscribe(start time.Time) {
	m.SubscribeDuration.Observe(time.Since(start).Seconds())
}

// ObserveLockWait records how long acquiring the pair lock took.
func (m *Metrics) ObserveLockWait(start time.Time) {
	m.LockWait.Observe(time.Since(start).Seconds())
}

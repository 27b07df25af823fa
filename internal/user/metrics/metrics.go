package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the user resolver.
type Metrics struct {
	CacheLookups    *prometheus.CounterVec
	ResolveDuration prometheus.Histogram
}

// New registers the user resolver metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pushgraph_user_cache_lookups_total",
			Help: "User cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		ResolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pushgraph_user_resolve_duration_seconds",
			Help:    "Duration of user resolution including store lookups on a miss",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementCache records a cache lookup outcome.
func (m *Metrics) IncrementCache(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveResolve records the duration of a Resolve call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveResolve(start time.Time) {
	m.ResolveDuration.Observe(time.Since(start).Seconds())
}

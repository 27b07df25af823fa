package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query labels.
const (
	QueryNotifications = "notifications"
	QuerySubscriptions = "subscriptions"
	QueryResources     = "subscription_resources"
)

// Metrics provides observability for the notification index.
type Metrics struct {
	QueryDuration *prometheus.HistogramVec
	QueryErrors   *prometheus.CounterVec
}

// New registers the notification index metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pushgraph_index_query_duration_seconds",
			Help:    "Duration of notification index reads",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"query"}),
		QueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pushgraph_index_query_errors_total",
			Help: "Failed notification index reads",
		}, []string{"query"}),
	}
}

// ObserveQuery records the duration of one read.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveQuery(query string, start time.Time) {
	m.QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementError(query string) {
	m.QueryErrors.WithLabelValues(query).Inc()
}

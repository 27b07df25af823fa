package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for hub requests.
const (
	OutcomeAccepted    = "accepted"
	OutcomeRejected    = "rejected"
	OutcomeUnreachable = "unreachable"
	OutcomeTimeout     = "timeout"
	OutcomeCircuitOpen = "circuit_open"
)

// Metrics provides observability for the push hub client.
type Metrics struct {
	HubRequests        *prometheus.CounterVec
	HubRequestDuration prometheus.Histogram
	CircuitOpen        prometheus.Gauge
}

// New registers the hub client metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HubRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pushgraph_hub_requests_total",
			Help: "Hub subscribe requests by outcome",
		}, []string{"outcome"}),
		HubRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pushgraph_hub_request_duration_seconds",
			Help:    "Duration of hub subscribe requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CircuitOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pushgraph_hub_circuit_open",
			Help: "1 while the hub circuit breaker is open",
		}),
	}
}

// ObserveRequest records one hub request. Call with time.Now() at the start.
func (m *Metrics) ObserveRequest(outcome string, start time.Time) {
	m.HubRequests.WithLabelValues(outcome).Inc()
	if outcome != OutcomeCircuitOpen {
		m.HubRequestDuration.Observe(time.Since(start).Seconds())
	}
}

// SetCircuitOpen mirrors the breaker state.
func (m *Metrics) SetCircuitOpen(open bool) {
	if open {
		m.CircuitOpen.Set(1)
		return
	}
	m.CircuitOpen.Set(0)
}

package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for outbound API traffic.
type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
}

// NewMetrics initializes and registers the client metrics on the default
// registry. Call at most once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storepulse",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total API requests by path and outcome class.",
		}, []string{"path", "class"}), // class: 2xx, 4xx, 5xx, transport
		RequestSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storepulse",
			Subsystem: "client",
			Name:      "request_seconds",
			Help:      "API request latency in seconds by path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
}

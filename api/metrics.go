package api

import "github.com/prometheus/client_golang/prometheus"

// Registry holds the SDK's Prometheus collectors. Consumers that expose
// metrics mount this registry; the SDK never starts an HTTP listener of
// its own.
var Registry = prometheus.NewRegistry()

var (
	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "glosshouse",
			Subsystem: "api",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight backend requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glosshouse",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of backend requests issued.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "glosshouse",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)
)

func init() {
	Registry.MustRegister(httpInFlight, httpRequests, httpDuration)
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "frfront",
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of calls to the facial recognition service",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"operation", "status"})

	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "frfront",
		Name:      "upstream_errors_total",
		Help:      "Failed calls to the facial recognition service",
	}, []string{"operation", "kind"})

	ScreenActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "frfront",
		Name:      "screen_actions_total",
		Help:      "Screen actions by outcome",
	}, []string{"screen", "outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "frfront",
		Name:      "http_request_duration_seconds",
		Help:      "Console HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "frfront",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections",
	})
)

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics defines our Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	RequestCount      *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	FeedClients       prometheus.Gauge
	DirectoryFallback prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		RequestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "meetzone_http_requests_total",
			Help: "Number of HTTP requests processed, by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meetzone_http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		FeedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "meetzone_worldclock_feed_clients",
			Help: "Websocket clients currently attached to the world clock feed.",
		}),
		DirectoryFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meetzone_directory_fallback_total",
			Help: "Times the country directory served the embedded fallback table.",
		}),
	}

	reg.MustRegister(
		m.RequestCount,
		m.RequestDuration,
		m.FeedClients,
		m.DirectoryFallback,
	)

	return m
}

// Handler serves the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

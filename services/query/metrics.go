package query

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the content cache collectors.
	Registry = prometheus.NewRegistry()

	fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toorrii_site",
			Subsystem: "query",
			Name:      "fetches_total",
			Help:      "Backend fetches issued by the content cache.",
		},
		[]string{"key", "outcome"},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toorrii_site",
			Subsystem: "query",
			Name:      "cache_hits_total",
			Help:      "Reads served from fresh cached content.",
		},
		[]string{"key"},
	)

	fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "toorrii_site",
			Subsystem: "query",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of backend content fetches.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
		},
		[]string{"key"},
	)
)

func init() {
	Registry.MustRegister(
		fetchesTotal,
		cacheHits,
		fetchDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// MetricsHandler exposes the registered collectors.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

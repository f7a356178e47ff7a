// Package metrics provides Prometheus metrics for the file server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	responsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rofis_responses_total",
			Help: "Total number of responses written, by request method and status code",
		},
		[]string{"method", "code"},
	)

	indexDirectories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rofis_index_directories",
			Help: "Number of directories in the current suffix index",
		},
	)

	indexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rofis_index_build_duration_seconds",
			Help:    "Time to scan the root and build the suffix index",
			Buckets: prometheus.DefBuckets,
		},
	)

	indexRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rofis_index_rebuilds_total",
			Help: "Rebuilds triggered by lookup misses, by result",
		},
		[]string{"result"},
	)

	watchSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rofis_watch_sessions_active",
			Help: "Number of connections parked on a WATCH request",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordResponse counts a response written for a request. Requests that
// failed to parse are recorded with method "-".
func RecordResponse(method string, code int) {
	responsesTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

// RecordIndexBuild records a completed index build and its size.
func RecordIndexBuild(dirs int, duration time.Duration) {
	indexDirectories.Set(float64(dirs))
	indexBuildDuration.Observe(duration.Seconds())
}

// RecordRebuild counts a rebuild-on-miss attempt. result is one of
// "ok", "error" or "throttled".
func RecordRebuild(result string) {
	indexRebuildsTotal.WithLabelValues(result).Inc()
}

// WatchStarted and WatchFinished track parked WATCH connections.
func WatchStarted() {
	watchSessionsActive.Inc()
}

func WatchFinished() {
	watchSessionsActive.Dec()
}

package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "journal_client",
			Name:      "requests_total",
			Help:      "HTTP exchanges by method and status class (network for transport failures).",
		},
		[]string{"method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "journal_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of HTTP exchanges including body read.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	csrfMissingTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "journal_client",
			Name:      "csrf_missing_total",
			Help:      "Unsafe requests sent without a CSRF token.",
		},
		[]string{"method"},
	)
)

// metricsObserver feeds request outcomes into the package collectors.
type metricsObserver struct{}

func (metricsObserver) ObserveRequest(method string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, statusClass(status)).Inc()
	requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (metricsObserver) ObserveMissingCSRF(method string) {
	csrfMissingTotal.WithLabelValues(method).Inc()
}

func statusClass(status int) string {
	if status <= 0 {
		return "network"
	}
	return strconv.Itoa(status/100) + "xx"
}

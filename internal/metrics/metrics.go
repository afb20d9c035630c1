// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sanagustin"

var (
	// Reservations counts reservation attempts by resource kind and outcome
	// ("created", "not_found", "eligibility_denied", "resource_unavailable",
	// "invalid_duration", "invalid_interval", "error").
	Reservations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_total",
		Help:      "Reservation attempts by resource kind and outcome.",
	}, []string{"kind", "outcome"})

	// TxRetries counts transactions retried after a busy/serialization failure.
	TxRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservation_tx_retries_total",
		Help:      "Reservation transactions retried after the store reported it was busy.",
	})

	// LockWait observes how long requests waited for a resource lock.
	LockWait = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reservation_lock_wait_seconds",
		Help:      "Time spent waiting for a per-resource reservation lock.",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
	}, []string{"kind"})

	// RPCDuration observes Connect RPC latency by procedure and status code.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "Connect RPC latency by procedure and code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure", "code"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

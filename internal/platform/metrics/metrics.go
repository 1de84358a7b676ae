// Package metrics exposes Prometheus collectors for HTTP traffic and settlements.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "settlement",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	settlementsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "settlement",
		Name:      "batches_recorded_total",
		Help:      "Settlement batches committed.",
	})

	settledAmount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "settlement",
		Name:      "settled_amount_total",
		Help:      "Sum of settled amounts across committed batches.",
	})

	settledItems = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "settlement",
		Name:      "line_items_settled_total",
		Help:      "Line items flipped to settled.",
	})

	settlementFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Name:      "failures_total",
		Help:      "Rejected or failed settlement attempts by reason.",
	}, []string{"reason"})
)

// ObserveHTTPRequest records one handled request.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordSettlement counts a committed batch.
func RecordSettlement(amount decimal.Decimal, itemCount int) {
	settlementsRecorded.Inc()
	settledAmount.Add(amount.InexactFloat64())
	settledItems.Add(float64(itemCount))
}

// RecordSettlementFailure counts a settlement attempt that wrote nothing.
func RecordSettlementFailure(reason string) {
	settlementFailures.WithLabelValues(reason).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

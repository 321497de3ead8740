// Package metrics provides Prometheus metrics for HTTP traffic and the
// reservation engine:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - cart_units_reserved_total / cart_units_returned_total: stock movement
//   - low_stock_events_total: low-stock notifications emitted
//   - prescriptions_processed_total: prescription uploads processed
//   - orders_confirmed_total: completed checkouts
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	UnitsReserved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_units_reserved_total",
			Help: "Stock units reserved into carts",
		},
	)

	UnitsReturned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_units_returned_total",
			Help: "Reserved stock units returned to the catalog",
		},
	)

	LowStockEvents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "low_stock_events_total",
			Help: "Low-stock notifications emitted by the reservation engine",
		},
	)

	PrescriptionsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prescriptions_processed_total",
			Help: "Prescription uploads processed by the extraction pipeline",
		},
	)

	OrdersConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_confirmed_total",
			Help: "Orders confirmed at checkout",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(UnitsReserved)
	prometheus.MustRegister(UnitsReturned)
	prometheus.MustRegister(LowStockEvents)
	prometheus.MustRegister(PrescriptionsProcessed)
	prometheus.MustRegister(OrdersConfirmed)
}

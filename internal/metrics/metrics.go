// Package metrics holds the Prometheus collectors for the rental service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector the service exports
type Metrics struct {
	registry *prometheus.Registry

	Searches        prometheus.Counter
	Quotes          prometheus.Counter
	QuoteValue      prometheus.Histogram
	BookingRequests *prometheus.CounterVec
	Conflicts       prometheus.Counter
	CatalogItems    prometheus.Gauge
	CatalogReloads  *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "klagear",
			Name:      "catalog_searches_total",
			Help:      "Catalog searches served.",
		}),
		Quotes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "klagear",
			Name:      "quotes_total",
			Help:      "Rental quotes computed.",
		}),
		QuoteValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "klagear",
			Name:      "quote_total_ugx",
			Help:      "Quote totals in UGX.",
			Buckets:   prometheus.ExponentialBuckets(100000, 2.5, 10),
		}),
		BookingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "klagear",
			Name:      "booking_requests_total",
			Help:      "Booking requests by handoff channel and outcome.",
		}, []string{"channel", "outcome"}),
		Conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "klagear",
			Name:      "availability_conflicts_total",
			Help:      "Availability checks that hit booked dates.",
		}),
		CatalogItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "klagear",
			Name:      "catalog_items",
			Help:      "Gear items in the current catalog snapshot.",
		}),
		CatalogReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "klagear",
			Name:      "catalog_reloads_total",
			Help:      "Catalog snapshot reloads by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "klagear",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "klagear",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Searches,
		m.Quotes,
		m.QuoteValue,
		m.BookingRequests,
		m.Conflicts,
		m.CatalogItems,
		m.CatalogReloads,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument wraps next and records count and latency per route pattern.
// The pattern is read after next runs, once the mux has matched it.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// v1
// internal/metrics/metrics.go

// Package metrics registers the service's Prometheus collectors. Counters
// and histograms are package-level so any layer can record without plumbing
// a registry around.
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
	holidayLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ferienplanung_holiday_lookups_total",
		Help: "Holiday source lookups by kind and outcome.",
	}, []string{"kind", "outcome"})

	holidayCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ferienplanung_holiday_cache_hits_total",
		Help: "In-memory holiday cache hits.",
	})

	holidayCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ferienplanung_holiday_cache_misses_total",
		Help: "In-memory holiday cache misses.",
	})

	projections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ferienplanung_projections_total",
		Help: "Target-year projections by outcome.",
	}, []string{"outcome"})

	projectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ferienplanung_projection_duration_seconds",
		Help:    "Wall time of one target-year projection.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})

	matchKinds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ferienplanung_match_kinds_total",
		Help: "Resolved day matches by match kind.",
	}, []string{"kind"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ferienplanung_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
	}, []string{"route", "status"})
)

// Handler exposes the default registry in Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncHolidayLookup counts one source lookup.
func IncHolidayLookup(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	holidayLookups.WithLabelValues(kind, outcome).Inc()
}

// CacheObserver adapts the counters to the holiday cache's Observer.
type CacheObserver struct{}

func (CacheObserver) CacheHit()  { holidayCacheHits.Inc() }
func (CacheObserver) CacheMiss() { holidayCacheMisses.Inc() }

// ObserveProjection records one finished target-year projection.
func ObserveProjection(d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	projections.WithLabelValues(outcome).Inc()
	if err == nil {
		projectionDuration.Observe(d.Seconds())
	}
}

// IncMatchKind counts one resolved day mapping.
func IncMatchKind(kind string) {
	matchKinds.WithLabelValues(kind).Inc()
}

// ObserveHTTP records one handled request.
func ObserveHTTP(route string, status int, d time.Duration) {
	httpDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

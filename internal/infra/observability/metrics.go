package observability

import (
	"net/http"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	storeErrors       *prometheus.CounterVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	snapshotRefreshes prometheus.Counter
	requestsTotal     *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "financas_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		storeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financas_store_errors_total",
				Help: "Total errors from the remote data store.",
			},
			[]string{"collection"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financas_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financas_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		snapshotRefreshes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "financas_snapshot_refreshes_total",
				Help: "Total full snapshot refetches from the store.",
			},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "financas_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrStoreError increments the store error counter for a collection.
func (m *Metrics) IncrStoreError(collection string) {
	m.storeErrors.WithLabelValues(collection).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrSnapshotRefresh counts a full snapshot refetch.
func (m *Metrics) IncrSnapshotRefresh() {
	m.snapshotRefreshes.Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// MetricsMiddleware counts every request as success or error (4xx/5xx).
// These counters feed the ops snapshot on GET /v1/metrics/ops.
func MetricsMiddleware(m *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if ww.Status() >= 400 {
				m.IncrRequest("error")
			} else {
				m.IncrRequest("success")
			}
		})
	}
}

// GetOpsSnapshot returns the counter snapshot served by GET /v1/metrics/ops.
func (m *Metrics) GetOpsSnapshot() *domain.OpsMetrics {
	// Prometheus counters expose cumulative values; read them back
	// through the client_model protobuf.
	totalRequests := getCounterValue(m.requestsTotal, "success") +
		getCounterValue(m.requestsTotal, "error")
	errorCount := getCounterValue(m.requestsTotal, "error")
	cacheHits := getCounterValue(m.cacheHits, "financial-data")
	cacheMisses := getCounterValue(m.cacheMisses, "financial-data")

	errorRate := float64(0)
	cacheHitRate := float64(0)
	if totalRequests > 0 {
		errorRate = errorCount / totalRequests
	}
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	storeErrors := float64(0)
	refreshes := float64(0)
	mfs, err := m.Registry.Gather()
	if err == nil {
		for _, mf := range mfs {
			switch mf.GetName() {
			case "financas_store_errors_total":
				for _, mm := range mf.GetMetric() {
					storeErrors += mm.GetCounter().GetValue()
				}
			case "financas_snapshot_refreshes_total":
				for _, mm := range mf.GetMetric() {
					refreshes += mm.GetCounter().GetValue()
				}
			}
		}
	}

	return &domain.OpsMetrics{
		TotalRequests:     int64(totalRequests),
		ErrorRate:         errorRate,
		CacheHitRate:      cacheHitRate,
		SnapshotRefreshes: int64(refreshes),
		StoreErrors:       int64(storeErrors),
		Period:            "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

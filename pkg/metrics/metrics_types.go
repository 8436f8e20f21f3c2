package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Crosswalk Resolve Metrics
	ResolvesTotal       *prometheus.CounterVec
	ResolveDuration     *prometheus.HistogramVec
	ResolveTreeNodes    prometheus.Histogram
	ResolveEdgesScanned prometheus.Histogram

	// Data Quality Metrics
	DuplicateEdgesTotal     prometheus.Counter
	UnmatchedOverlayTotal   prometheus.Counter
	StructuralWarningsTotal prometheus.Counter

	// Store Metrics
	StoreQueriesTotal  *prometheus.CounterVec
	StoreQueryDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initHTTPMetrics()
	r.initResolveMetrics()
	r.initStoreMetrics()
	return r
}

// PrometheusRegistry exposes the underlying registry for the /metrics
// handler.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

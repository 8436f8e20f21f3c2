package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initResolveMetrics() {
	r.ResolvesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crosswalk_resolves_total",
			Help: "Total number of crosswalk tree resolves",
		},
		[]string{"primary_framework", "status"},
	)

	r.ResolveDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crosswalk_resolve_duration_seconds",
			Help:    "Crosswalk resolve latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"primary_framework"},
	)

	r.ResolveTreeNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crosswalk_resolve_tree_nodes",
			Help:    "Number of nodes in resolved crosswalk trees",
			Buckets: []float64{10, 100, 500, 1000, 2500, 5000, 10000},
		},
	)

	r.ResolveEdgesScanned = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crosswalk_resolve_edges_scanned",
			Help:    "Number of mapping edges scanned per resolve",
			Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000},
		},
	)

	r.DuplicateEdgesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crosswalk_duplicate_edges_total",
			Help: "Mapping edges dropped as duplicates of an existing pair",
		},
	)

	r.UnmatchedOverlayTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crosswalk_unmatched_overlay_edges_total",
			Help: "Overlay edges whose central control matched no primary leaf",
		},
	)

	r.StructuralWarningsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crosswalk_structural_warnings_total",
			Help: "Hierarchy warnings such as dangling parent references",
		},
	)
}

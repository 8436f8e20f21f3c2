package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordResolve records one crosswalk resolve.
func (r *Registry) RecordResolve(primaryFramework, status string, duration time.Duration, treeNodes, edgesScanned int) {
	r.ResolvesTotal.WithLabelValues(primaryFramework, status).Inc()
	r.ResolveDuration.WithLabelValues(primaryFramework).Observe(duration.Seconds())
	r.ResolveTreeNodes.Observe(float64(treeNodes))
	r.ResolveEdgesScanned.Observe(float64(edgesScanned))
}

// RecordDataQuality records the warning counters from one resolve.
func (r *Registry) RecordDataQuality(duplicateEdges, unmatchedOverlay, structuralWarnings int) {
	r.DuplicateEdgesTotal.Add(float64(duplicateEdges))
	r.UnmatchedOverlayTotal.Add(float64(unmatchedOverlay))
	r.StructuralWarningsTotal.Add(float64(structuralWarnings))
}

// RecordStoreQuery records a catalog store query.
func (r *Registry) RecordStoreQuery(operation, status string, duration time.Duration) {
	r.StoreQueriesTotal.WithLabelValues(operation, status).Inc()
	r.StoreQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

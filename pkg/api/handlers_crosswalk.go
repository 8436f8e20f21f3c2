package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dd0wney/cluso-crosswalk/pkg/export"
	"github.com/dd0wney/cluso-crosswalk/pkg/hierarchy"
	"github.com/dd0wney/cluso-crosswalk/pkg/logging"
	"github.com/dd0wney/cluso-crosswalk/pkg/store"
	"github.com/dd0wney/cluso-crosswalk/pkg/validation"
)

// handleCrosswalk resolves a crosswalk tree for a validated query.
func (s *Server) handleCrosswalk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.CrosswalkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateCrosswalkRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, took, err := s.resolve(r, req)
	if errors.Is(err, store.ErrFrameworkNotFound) {
		s.respondError(w, http.StatusNotFound, "Framework not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, sanitizeError(err, "resolve crosswalk"))
		return
	}

	s.respondJSON(w, http.StatusOK, CrosswalkResponse{
		Tree:     result.Forest.SortedRoots(),
		Warnings: result.Warnings,
		Summary:  summarize(result.Forest),
		Took:     took.String(),
	})
}

// handleCrosswalkExport serves a flattened report of a resolved tree.
// Query parameters mirror the POST body: primary, comparison, additional
// (comma-separated), showAll, includeOrganizational, format (csv|json).
func (s *Server) handleCrosswalkExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()
	req := validation.CrosswalkRequest{
		PrimaryFrameworkID:            q.Get("primary"),
		ComparisonFrameworkID:         q.Get("comparison"),
		ShowAllControls:               q.Get("showAll") == "true",
		IncludeOrganizationalControls: q.Get("includeOrganizational") == "true",
	}
	if additional := q.Get("additional"); additional != "" {
		req.AdditionalFrameworkIDs = strings.Split(additional, ",")
	}
	if err := validation.ValidateCrosswalkRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	format := q.Get("format")
	if format == "" {
		format = "csv"
	}

	result, _, err := s.resolve(r, req)
	if errors.Is(err, store.ErrFrameworkNotFound) {
		s.respondError(w, http.StatusNotFound, "Framework not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, sanitizeError(err, "resolve crosswalk"))
		return
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="crosswalk.csv"`)
	case "json":
		w.Header().Set("Content-Type", "application/json")
	default:
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported format: %s", format))
		return
	}

	if err := export.Write(result.Forest, format, w); err != nil {
		// Headers are already out; all we can do is log.
		sanitizeError(err, "export crosswalk")
	}
}

// resolve loads the query's input from the store and runs the engine,
// recording metrics either way.
func (s *Server) resolve(r *http.Request, req validation.CrosswalkRequest) (hierarchy.Result, time.Duration, error) {
	q := hierarchy.Query{
		PrimaryFrameworkID:            req.PrimaryFrameworkID,
		ComparisonFrameworkID:         req.ComparisonFrameworkID,
		AdditionalFrameworkIDs:        req.AdditionalFrameworkIDs,
		ShowAllControls:               req.ShowAllControls,
		IncludeOrganizationalControls: req.IncludeOrganizationalControls,
	}

	start := time.Now()
	in, err := store.LoadInput(r.Context(), s.store, q)
	if err != nil {
		s.metrics.RecordResolve(req.PrimaryFrameworkID, "error", time.Since(start), 0, 0)
		s.logger.Error("crosswalk resolve failed",
			logging.FrameworkID(req.PrimaryFrameworkID),
			logging.Operation("resolve"),
			logging.Error(err))
		return hierarchy.Result{}, 0, err
	}

	result := s.engine.Resolve(q, in)
	took := time.Since(start)

	treeNodes := 0
	for _, root := range result.Forest {
		treeNodes += root.CountNodes()
	}
	edgesScanned := len(in.PrimaryEdges) + len(in.ComparisonEdges) + len(in.AdditionalEdges)
	s.metrics.RecordResolve(req.PrimaryFrameworkID, "success", took, treeNodes, edgesScanned)
	s.metrics.RecordDataQuality(result.Warnings.DuplicateEdges, result.Warnings.UnmatchedOverlayEdges, len(result.Warnings.Structural))
	s.logger.Info("crosswalk resolved",
		logging.FrameworkID(req.PrimaryFrameworkID),
		logging.TreeNodes(treeNodes),
		logging.Count(edgesScanned),
		logging.Latency(took))

	return result, took, nil
}

// summarize counts leaf coverage over the resolved tree.
func summarize(forest hierarchy.Forest) CoverageSummary {
	var summary CoverageSummary
	var visit func(n *hierarchy.Node)
	visit = func(n *hierarchy.Node) {
		if n.IsLeaf {
			summary.TotalControls++
			if len(n.ComparisonMappings)+len(n.RelatedMappings) > 0 {
				summary.MappedControls++
			}
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, root := range forest {
		visit(root)
	}
	if summary.TotalControls > 0 {
		summary.CoveragePercent = float64(summary.MappedControls) / float64(summary.TotalControls) * 100
	}
	return summary
}

package hierarchy

import (
	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
)

// Query selects what the crosswalk explorer should resolve. The primary
// framework shapes the tree; the comparison framework's edges are
// highlighted distinctly from the remaining additional frameworks.
type Query struct {
	PrimaryFrameworkID     string
	ComparisonFrameworkID  string
	AdditionalFrameworkIDs []string

	// ShowAllControls disables pruning of subtrees without mappings.
	ShowAllControls bool

	// IncludeOrganizationalControls keeps organizational parent controls
	// in place instead of promoting their children.
	IncludeOrganizationalControls bool
}

// Input is the fully materialized data a resolve runs over. The engine
// does no I/O; the caller (normally the store) fetches everything first.
type Input struct {
	PrimaryFramework catalog.Framework
	Controls         []catalog.Control

	// PrimaryEdges are the crosswalk edges owned by the primary
	// framework's controls. ComparisonEdges and AdditionalEdges belong
	// to the caller-selected overlay frameworks.
	PrimaryEdges    []catalog.MappingEdge
	ComparisonEdges []catalog.MappingEdge
	AdditionalEdges []catalog.MappingEdge
}

// Warnings carries data-quality signals recovered during a resolve. None
// of these abort tree construction; the engine is total over its input.
type Warnings struct {
	// Structural holds messages about malformed hierarchy data, such as
	// dangling parent references resolved as roots.
	Structural []string `json:"structural,omitempty"`

	// DuplicateEdges counts edges dropped because another edge already
	// asserted the same (central, external) pair.
	DuplicateEdges int `json:"duplicateEdges,omitempty"`

	// UnmatchedOverlayEdges counts comparison/additional edges whose
	// central control is referenced by no primary leaf.
	UnmatchedOverlayEdges int `json:"unmatchedOverlayEdges,omitempty"`
}

// Result is a resolved crosswalk tree plus its warnings.
type Result struct {
	Forest   Forest   `json:"tree"`
	Warnings Warnings `json:"warnings"`
}

// Engine resolves crosswalk hierarchy queries. It holds only the
// resolver's memo cache; resolves are independent, synchronous, and
// re-runnable: the same input always produces a structurally identical
// tree.
type Engine struct {
	resolver *Resolver
}

// NewEngine creates an engine with a fresh resolver.
func NewEngine() *Engine {
	return &Engine{resolver: NewResolver()}
}

// Resolver exposes the engine's path resolver, mainly so callers can
// register framework-specific pattern tables.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// Resolve runs the full pipeline: build the primary tree, attach
// overlays, aggregate, then apply the query's filters (promotion before
// pruning, so promoted children keep their mapping data when pruning
// decisions are made). An empty control set yields an empty forest.
func (e *Engine) Resolve(q Query, in Input) Result {
	var w Warnings

	before := len(in.PrimaryEdges) + len(in.ComparisonEdges) + len(in.AdditionalEdges)
	primaryEdges := catalog.DedupeEdges(in.PrimaryEdges)
	comparisonEdges := catalog.DedupeEdges(in.ComparisonEdges)
	additionalEdges := catalog.DedupeEdges(in.AdditionalEdges)
	w.DuplicateEdges = before - len(primaryEdges) - len(comparisonEdges) - len(additionalEdges)

	central := in.PrimaryFramework.IsCentral()
	forest, structural := buildPrimaryTree(e.resolver, in.PrimaryFramework, in.Controls, edgesByControl(primaryEdges, central))
	w.Structural = structural

	w.UnmatchedOverlayEdges = attachOverlays(forest, central, comparisonEdges, additionalEdges)
	aggregateForest(forest)

	if !q.IncludeOrganizationalControls {
		forest = PromoteOrganizationalParents(forest)
		// Promotion drops organizational parents, so rollups are recomputed
		// over the new shape before pruning consults them.
		aggregateForest(forest)
	}
	if !q.ShowAllControls {
		forest = PruneUnmapped(forest)
	}

	return Result{Forest: forest, Warnings: w}
}

// edgesByControl indexes primary edges by their owning control: the
// external control for an external primary framework, the central
// control when the central taxonomy itself is primary.
func edgesByControl(edges []catalog.MappingEdge, central bool) map[string][]catalog.MappingEdge {
	idx := make(map[string][]catalog.MappingEdge, len(edges))
	for _, e := range edges {
		key := e.ExternalControlID
		if central {
			key = e.CentralControlID
		}
		idx[key] = append(idx[key], e)
	}
	return idx
}

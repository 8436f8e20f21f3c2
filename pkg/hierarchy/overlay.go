package hierarchy

import (
	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
)

// overlayIndex maps central-taxonomy control IDs to the overlay edges
// referencing them. Correlation between frameworks is always mediated
// through the central taxonomy, which makes overlay attachment a hash
// join: build the index once, probe it per leaf.
type overlayIndex map[string][]catalog.MappingEdge

func buildOverlayIndex(edges []catalog.MappingEdge) overlayIndex {
	idx := make(overlayIndex, len(edges))
	for _, e := range edges {
		idx[e.CentralControlID] = append(idx[e.CentralControlID], e)
	}
	return idx
}

// attachOverlays correlates comparison and additional framework edges
// onto the primary tree's leaves. It returns the number of overlay edges
// that matched no leaf, a data-quality signal for the caller.
//
// For an external primary framework, a leaf's join keys are the central
// control IDs referenced by its primary mappings; a leaf with no primary
// mappings has nothing to correlate through and receives no overlay
// data. When the primary framework is the central taxonomy itself there
// is no indirection: the leaf's own control ID is the join key.
func attachOverlays(forest Forest, central bool, comparisonEdges, additionalEdges []catalog.MappingEdge) int {
	comparison := buildOverlayIndex(comparisonEdges)
	additional := buildOverlayIndex(additionalEdges)
	probed := make(map[string]bool)

	var visit func(n *Node)
	visit = func(n *Node) {
		for _, id := range leafJoinKeys(n, central) {
			probed[id] = true
			n.ComparisonMappings = append(n.ComparisonMappings, comparison[id]...)
			n.RelatedMappings = append(n.RelatedMappings, additional[id]...)
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, root := range forest {
		visit(root)
	}

	unmatched := 0
	for id, edges := range comparison {
		if !probed[id] {
			unmatched += len(edges)
		}
	}
	for id, edges := range additional {
		if !probed[id] {
			unmatched += len(edges)
		}
	}
	return unmatched
}

// leafJoinKeys returns the distinct central control IDs a leaf can
// correlate overlay edges through, in first-seen order.
func leafJoinKeys(n *Node, central bool) []string {
	if !n.IsLeaf {
		return nil
	}
	if central {
		return []string{n.ControlID}
	}
	if len(n.PrimaryMappings) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(n.PrimaryMappings))
	ids := make([]string, 0, len(n.PrimaryMappings))
	for _, e := range n.PrimaryMappings {
		if !seen[e.CentralControlID] {
			seen[e.CentralControlID] = true
			ids = append(ids, e.CentralControlID)
		}
	}
	return ids
}

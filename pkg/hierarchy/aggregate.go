package hierarchy

import (
	"sort"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
)

// aggregateForest computes the bottom-up rollup for every node. Counts
// cover comparison and related mappings only; primary mappings are the
// trivial self-reference to the central taxonomy and would say nothing
// about cross-framework coverage.
func aggregateForest(forest Forest) {
	for _, root := range forest {
		aggregateNode(root)
	}
}

func aggregateNode(n *Node) (pairs map[string]bool, frameworks map[string]bool) {
	if len(n.Children) == 0 {
		pairs, frameworks = ownMappingSets(n)
	} else {
		pairs = make(map[string]bool)
		frameworks = make(map[string]bool)
		for _, c := range n.Children {
			childPairs, childFrameworks := aggregateNode(c)
			for k := range childPairs {
				pairs[k] = true
			}
			for k := range childFrameworks {
				frameworks[k] = true
			}
		}
	}

	n.Aggregate = &Aggregate{
		TotalMappings:      len(pairs),
		DistinctFrameworks: sortedKeys(frameworks),
		HasAnyMapping:      len(pairs) > 0,
	}
	return pairs, frameworks
}

// ownMappingSets collects a node's direct overlay mappings, deduplicated
// by (central, external) pair. Redundant upstream loads can mint the same
// relationship under fresh edge IDs; the pair is what counts once.
func ownMappingSets(n *Node) (map[string]bool, map[string]bool) {
	pairs := make(map[string]bool)
	frameworks := make(map[string]bool)
	collect := func(edges []catalog.MappingEdge) {
		for _, e := range edges {
			pairs[e.PairKey()] = true
			frameworks[e.FrameworkID] = true
		}
	}
	collect(n.ComparisonMappings)
	collect(n.RelatedMappings)
	return pairs, frameworks
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

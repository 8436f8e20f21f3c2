package hierarchy

import (
	"sort"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
)

// Node is one entry in the resolved crosswalk tree. A node either
// corresponds to a real control (IsLeaf) or is an inferred grouping level
// created while resolving ref code paths.
type Node struct {
	RefCode string `json:"refCode"`
	Label   string `json:"label"`

	// IsLeaf is true iff this node corresponds to an actual control
	// rather than an inferred group. A control node keeps IsLeaf=true
	// even when child controls resolve beneath it (an "organizational
	// parent").
	IsLeaf bool `json:"isLeaf"`

	// ControlID is the backing control's ID for leaf nodes, empty for
	// inferred groups.
	ControlID string `json:"controlId,omitempty"`

	// PrimaryMappings are the crosswalk edges owned by this control in
	// the primary framework. ComparisonMappings and RelatedMappings are
	// attached by the overlay pass, correlated through the central
	// taxonomy.
	PrimaryMappings    []catalog.MappingEdge `json:"primaryMappings,omitempty"`
	ComparisonMappings []catalog.MappingEdge `json:"comparisonMappings,omitempty"`
	RelatedMappings    []catalog.MappingEdge `json:"relatedMappings,omitempty"`

	Children map[string]*Node `json:"children,omitempty"`

	Aggregate *Aggregate `json:"aggregate,omitempty"`
}

// Aggregate holds the bottom-up rollup computed after overlay attachment.
// PrimaryMappings are deliberately excluded: the counts describe coverage
// by the caller-selected comparison and additional frameworks.
type Aggregate struct {
	TotalMappings      int      `json:"totalMappings"`
	DistinctFrameworks []string `json:"distinctFrameworks"`
	HasAnyMapping      bool     `json:"hasAnyMapping"`
}

// Forest is the engine's output: top-level hierarchy segments keyed by
// ref code. Map iteration order is not deterministic; renderers should
// use SortedRoots.
type Forest map[string]*Node

// SortedRoots returns the forest's root nodes ordered by ref code.
func (f Forest) SortedRoots() []*Node {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return compareRefCodes(keys[i], keys[j]) < 0 })
	out := make([]*Node, 0, len(keys))
	for _, k := range keys {
		out = append(out, f[k])
	}
	return out
}

// SortedChildren returns the node's children ordered by ref code.
func (n *Node) SortedChildren() []*Node {
	return Forest(n.Children).SortedRoots()
}

// CountNodes returns the number of nodes in the subtree rooted at n,
// including n itself.
func (n *Node) CountNodes() int {
	total := 1
	for _, c := range n.Children {
		total += c.CountNodes()
	}
	return total
}

// compareRefCodes orders ref codes with numeric runs compared as numbers,
// so AC-2 sorts before AC-10 and 9.1 before 10.1.
func compareRefCodes(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ia, ja := i, j
			for ia < len(a) && isDigit(a[ia]) {
				ia++
			}
			for ja < len(b) && isDigit(b[ja]) {
				ja++
			}
			na, nb := trimZeros(a[i:ia]), trimZeros(b[j:ja])
			if len(na) != len(nb) {
				if len(na) < len(nb) {
					return -1
				}
				return 1
			}
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			i, j = ia, ja
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	default:
		return 0
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}

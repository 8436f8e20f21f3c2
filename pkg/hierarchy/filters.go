package hierarchy

// Tree filters operate on the built, aggregated tree. The build phase is
// internally mutable; filters instead return new trees so a caller that
// holds both a filtered and an unfiltered view never sees one alias the
// other. Unchanged subtrees may be shared.

// PromoteOrganizationalParents splices the children of organizational
// parents (control-backed nodes that also have children) up one level,
// dropping the parent node. Children are promoted depth-first so nested
// organizational parents resolve too. Group nodes are structural, not
// controls, and are never removed.
//
// The dropped parent's own mappings are discarded rather than reattached
// anywhere. That matches the production behavior this engine replaces;
// see DESIGN.md for the tradeoff.
func PromoteOrganizationalParents(forest Forest) Forest {
	out := make(Forest, len(forest))
	for key, root := range forest {
		promoted := promoteNode(root)
		if root.IsLeaf && len(promoted.Children) > 0 {
			// The root itself is an organizational parent; its children
			// become roots.
			for k, c := range promoted.Children {
				out[k] = c
			}
			continue
		}
		out[key] = promoted
	}
	return out
}

func promoteNode(n *Node) *Node {
	if len(n.Children) == 0 {
		return n
	}

	clone := *n
	clone.Children = make(map[string]*Node, len(n.Children))
	for key, child := range n.Children {
		promoted := promoteNode(child)
		if promoted.IsLeaf && len(promoted.Children) > 0 {
			for k, grandchild := range promoted.Children {
				clone.Children[k] = grandchild
			}
			continue
		}
		clone.Children[key] = promoted
	}
	return &clone
}

// PruneUnmapped drops every subtree with no comparison or related
// mappings anywhere beneath it. A node survives iff its own aggregate
// has a mapping or a descendant's does; ancestors of a surviving leaf
// are retained with their direct data unchanged. Requires aggregates to
// be computed.
func PruneUnmapped(forest Forest) Forest {
	out := make(Forest, len(forest))
	for key, root := range forest {
		if kept := pruneNode(root); kept != nil {
			out[key] = kept
		}
	}
	return out
}

func pruneNode(n *Node) *Node {
	keptChildren := make(map[string]*Node, len(n.Children))
	for key, child := range n.Children {
		if kept := pruneNode(child); kept != nil {
			keptChildren[key] = kept
		}
	}

	hasOwn := n.Aggregate != nil && n.Aggregate.HasAnyMapping
	if !hasOwn && len(keptChildren) == 0 {
		return nil
	}

	clone := *n
	clone.Children = keptChildren
	return &clone
}

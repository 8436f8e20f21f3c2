package hierarchy

import (
	"fmt"
	"regexp"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
)

// scfSubControlRe matches sub-control codes like AAT-01.1, whose parent
// control is the code with the trailing .N suffix stripped (AAT-01).
var scfSubControlRe = regexp.MustCompile(`^([A-Z]+-\d+)\.\d+$`)

// builder assembles the primary framework's tree. Controls are inserted
// in stable input order; nodes are deduplicated by path prefix, so two
// controls resolving through the same segment share one node.
type builder struct {
	resolver  *Resolver
	framework catalog.Framework
	byID      map[string]catalog.Control
	warnings  []string
}

// buildPrimaryTree builds the forest for the primary framework. Each
// control's hierarchy path comes from explicit parent data when the
// framework carries it, from the domain plus sub-control suffix for the
// central taxonomy, and from pattern inference otherwise.
func buildPrimaryTree(resolver *Resolver, framework catalog.Framework, controls []catalog.Control, edgesByControl map[string][]catalog.MappingEdge) (Forest, []string) {
	b := &builder{
		resolver:  resolver,
		framework: framework,
		byID:      make(map[string]catalog.Control, len(controls)),
	}
	for _, c := range controls {
		b.byID[c.ID] = c
	}

	hasParentData := false
	for _, c := range controls {
		if c.ParentID != "" {
			hasParentData = true
			break
		}
	}

	forest := make(Forest)
	for _, c := range controls {
		segments, labels := b.pathFor(c, hasParentData)
		b.insert(forest, c, segments, labels, edgesByControl[c.ID])
	}
	return forest, b.warnings
}

// pathFor resolves a control's root-to-leaf segment path and the labels
// for any intermediate segments.
func (b *builder) pathFor(c catalog.Control, hasParentData bool) ([]string, map[string]string) {
	if b.framework.IsCentral() {
		return b.centralPath(c)
	}
	if hasParentData {
		return b.parentWalkPath(c)
	}
	resolved := b.resolver.Resolve(b.framework.Code, c.RefCode)
	return resolved.Segments, resolved.Labels
}

// centralPath places a central-taxonomy control under its domain, with
// sub-controls (AAT-01.1) nested under their parent control (AAT-01).
func (b *builder) centralPath(c catalog.Control) ([]string, map[string]string) {
	labels := make(map[string]string, 3)
	var segments []string
	if c.Domain != "" {
		segments = append(segments, c.Domain)
		labels[c.Domain] = c.Domain
	}

	parentRef := ""
	if c.ParentID != "" {
		if parent, ok := b.byID[c.ParentID]; ok {
			parentRef = parent.RefCode
			labels[parentRef] = parent.DisplayTitle()
		} else {
			b.warn("control %s references missing parent %s", c.RefCode, c.ParentID)
		}
	}
	if parentRef == "" {
		if m := scfSubControlRe.FindStringSubmatch(c.RefCode); m != nil {
			parentRef = m[1]
			labels[parentRef] = parentRef
		}
	}
	if parentRef != "" {
		segments = append(segments, parentRef)
	}
	segments = append(segments, c.RefCode)
	return segments, labels
}

// parentWalkPath follows explicit ParentID chains to the root. This is
// the canonical path; pattern inference never runs for frameworks with
// parent data. A dangling parent reference resolves the orphan as a root
// and is surfaced as a warning, not a failure.
func (b *builder) parentWalkPath(c catalog.Control) ([]string, map[string]string) {
	chain := []catalog.Control{c}
	visited := map[string]bool{c.ID: true}

	cur := c
	for cur.ParentID != "" {
		parent, ok := b.byID[cur.ParentID]
		if !ok {
			b.warn("control %s references missing parent %s", cur.RefCode, cur.ParentID)
			break
		}
		if visited[parent.ID] {
			b.warn("parent cycle detected at control %s", parent.RefCode)
			break
		}
		visited[parent.ID] = true
		chain = append(chain, parent)
		cur = parent
	}

	segments := make([]string, 0, len(chain))
	labels := make(map[string]string, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		segments = append(segments, chain[i].RefCode)
		labels[chain[i].RefCode] = chain[i].DisplayTitle()
	}
	return segments, labels
}

// insert walks the path, creating group nodes on demand, and attaches
// the control and its edges at the terminal segment.
func (b *builder) insert(forest Forest, c catalog.Control, segments []string, labels map[string]string, edges []catalog.MappingEdge) {
	if len(segments) == 0 {
		return
	}

	children := forest
	var node *Node
	for _, seg := range segments {
		next, ok := children[seg]
		if !ok {
			next = &Node{
				RefCode:  seg,
				Label:    labels[seg],
				Children: make(map[string]*Node),
			}
			if next.Label == "" {
				next.Label = seg
			}
			children[seg] = next
		}
		node = next
		children = next.Children
	}

	// Terminal segment: this node is a real control, not just a group.
	// The first control to claim a node wins its label; merged controls
	// contribute their edges only.
	if !node.IsLeaf {
		node.IsLeaf = true
		node.ControlID = c.ID
		node.Label = c.DisplayTitle()
	}
	node.PrimaryMappings = append(node.PrimaryMappings, edges...)
}

func (b *builder) warn(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

package catalog

import (
	"strings"
)

// MappingStrength describes how closely a mapped external control covers
// the central-taxonomy control it is crosswalked to.
type MappingStrength string

const (
	StrengthExact   MappingStrength = "exact"
	StrengthPartial MappingStrength = "partial"
)

// StrengthForFrameworkName derives the default mapping strength for edges
// imported from a framework crosswalk column. Source spreadsheets flag
// partial coverage in the framework name itself, e.g. "CIS CSC v8 (partial mapping)".
func StrengthForFrameworkName(name string) MappingStrength {
	if strings.Contains(strings.ToLower(name), "(partial") {
		return StrengthPartial
	}
	return StrengthExact
}

// Framework identifies a named, versioned control set.
type Framework struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// IsCentral reports whether this framework is the central taxonomy that
// all crosswalk edges are expressed against.
func (f Framework) IsCentral() bool {
	return f.Code == FrameworkSCF
}

// Control represents one control entry within exactly one framework.
// Controls are read-only snapshots fetched per request; the engine never
// mutates them.
type Control struct {
	ID          string `json:"id"`
	FrameworkID string `json:"frameworkId"`
	RefCode     string `json:"refCode"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Domain groups central-taxonomy controls into top-level categories
	// (e.g. "Governance"). Empty for external frameworks.
	Domain string `json:"domain,omitempty"`

	// ParentID is an optional explicit parent control within the same
	// framework. When a framework carries parent data, hierarchy is read
	// from this field and pattern inference is skipped.
	ParentID string `json:"parentId,omitempty"`
}

// DisplayTitle returns the control's title, falling back to the
// description and finally the ref code for sparsely-populated imports.
func (c Control) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	if c.Description != "" {
		return c.Description
	}
	return c.RefCode
}

// MappingEdge is one asserted correspondence between a central-taxonomy
// control and an external-framework control.
type MappingEdge struct {
	ID                string          `json:"id"`
	CentralControlID  string          `json:"centralControlId"`
	ExternalControlID string          `json:"externalControlId"`
	FrameworkID       string          `json:"frameworkId"`
	Strength          MappingStrength `json:"mappingStrength"`
	Notes             string          `json:"notes,omitempty"`
}

// PairKey identifies the semantic relationship independent of edge ID.
// Redundant data loads can produce duplicate edges with fresh IDs; the
// pair is what must be counted once.
func (e MappingEdge) PairKey() string {
	return e.CentralControlID + "\x00" + e.ExternalControlID
}

// DedupeEdges removes duplicate edges by (central, external) pair,
// keeping the first occurrence in input order.
func DedupeEdges(edges []MappingEdge) []MappingEdge {
	if len(edges) < 2 {
		return edges
	}
	seen := make(map[string]struct{}, len(edges))
	out := make([]MappingEdge, 0, len(edges))
	for _, e := range edges {
		key := e.PairKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

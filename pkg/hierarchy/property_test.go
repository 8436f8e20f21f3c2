package hierarchy

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
)

var csfFunctions = []string{"GV", "ID", "PR", "DE", "RS", "RC"}
var csfCategories = []string{"RM", "PO", "AA", "AE", "CO", "RP"}

// genRefCode builds NIST CSF style ref codes from small index spaces so
// generated catalogs share prefixes and exercise node merging.
func genRefCode() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, len(csfFunctions)-1),
		gen.IntRange(0, len(csfCategories)-1),
		gen.IntRange(1, 12),
	).Map(func(vals []interface{}) string {
		return fmt.Sprintf("%s.%s-%02d", csfFunctions[vals[0].(int)], csfCategories[vals[1].(int)], vals[2].(int))
	})
}

func genCatalog() gopter.Gen {
	return gen.SliceOf(genRefCode()).Map(func(refs []string) []catalog.Control {
		seen := make(map[string]struct{}, len(refs))
		controls := make([]catalog.Control, 0, len(refs))
		for i, ref := range refs {
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			controls = append(controls, catalog.Control{
				ID:          fmt.Sprintf("c%d", i),
				FrameworkID: testCSF.ID,
				RefCode:     ref,
				Title:       "Control " + ref,
			})
		}
		return controls
	})
}

// collectControlIDs walks a forest and records every control-backed node.
func collectControlIDs(forest Forest) map[string]int {
	ids := make(map[string]int)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.ControlID != "" {
			ids[n.ControlID]++
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, root := range forest {
		walk(root)
	}
	return ids
}

func forestHasMapping(n *Node) bool {
	if len(n.ComparisonMappings) > 0 || len(n.RelatedMappings) > 0 {
		return true
	}
	for _, c := range n.Children {
		if forestHasMapping(c) {
			return true
		}
	}
	return false
}

// TestCrosswalkInvariants verifies structural properties that must hold
// for any generated catalog, not just hand-picked fixtures.
func TestCrosswalkInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: path resolution is deterministic
	properties.Property("path resolution is deterministic", prop.ForAll(
		func(ref string) bool {
			r := NewResolver()
			first := r.Resolve(catalog.FrameworkNISTCSF, ref)
			second := r.Resolve(catalog.FrameworkNISTCSF, ref)
			fresh := NewResolver().Resolve(catalog.FrameworkNISTCSF, ref)
			return reflect.DeepEqual(first, second) && reflect.DeepEqual(first, fresh)
		},
		genRefCode(),
	))

	// Property 2: every control appears exactly once in the unfiltered tree
	properties.Property("tree completeness", prop.ForAll(
		func(controls []catalog.Control) bool {
			forest, _ := buildPrimaryTree(NewResolver(), testCSF, controls, nil)
			ids := collectControlIDs(forest)
			if len(ids) != len(controls) {
				return false
			}
			for _, c := range controls {
				if ids[c.ID] != 1 {
					return false
				}
			}
			return true
		},
		genCatalog(),
	))

	// Property 3: resolving the same input twice yields equal trees
	properties.Property("resolve is repeatable", prop.ForAll(
		func(controls []catalog.Control) bool {
			in := Input{PrimaryFramework: testCSF, Controls: controls}
			for i, c := range controls {
				if i%2 == 0 {
					in.ComparisonEdges = append(in.ComparisonEdges, catalog.MappingEdge{
						ID:                fmt.Sprintf("e%d", i),
						CentralControlID:  fmt.Sprintf("scf%d", i),
						ExternalControlID: c.ID,
						FrameworkID:       testSCF.ID,
					})
					in.PrimaryEdges = append(in.PrimaryEdges, catalog.MappingEdge{
						ID:                fmt.Sprintf("p%d", i),
						CentralControlID:  fmt.Sprintf("scf%d", i),
						ExternalControlID: c.ID,
						FrameworkID:       testCSF.ID,
					})
				}
			}
			q := Query{PrimaryFrameworkID: testCSF.ID, ComparisonFrameworkID: testSCF.ID}
			first := NewEngine().Resolve(q, in)
			second := NewEngine().Resolve(q, in)
			return reflect.DeepEqual(first, second)
		},
		genCatalog(),
	))

	// Property 4: pruning only removes nodes, and whatever survives has a
	// mapping somewhere in its subtree
	properties.Property("pruning is monotonic", prop.ForAll(
		func(controls []catalog.Control) bool {
			in := Input{PrimaryFramework: testCSF, Controls: controls}
			for i, c := range controls {
				if i%3 == 0 {
					in.ComparisonEdges = append(in.ComparisonEdges, catalog.MappingEdge{
						ID:                fmt.Sprintf("e%d", i),
						CentralControlID:  fmt.Sprintf("scf%d", i),
						ExternalControlID: c.ID,
						FrameworkID:       testSCF.ID,
					})
					in.PrimaryEdges = append(in.PrimaryEdges, catalog.MappingEdge{
						ID:                fmt.Sprintf("p%d", i),
						CentralControlID:  fmt.Sprintf("scf%d", i),
						ExternalControlID: c.ID,
						FrameworkID:       testCSF.ID,
					})
				}
			}
			q := Query{PrimaryFrameworkID: testCSF.ID, ComparisonFrameworkID: testSCF.ID, IncludeOrganizationalControls: true}

			qAll := q
			qAll.ShowAllControls = true
			full := NewEngine().Resolve(qAll, in)
			pruned := NewEngine().Resolve(q, in)

			fullIDs := collectControlIDs(full.Forest)
			for id := range collectControlIDs(pruned.Forest) {
				if fullIDs[id] == 0 {
					return false
				}
			}
			for _, root := range pruned.Forest {
				if !forestHasMapping(root) {
					return false
				}
			}
			return true
		},
		genCatalog(),
	))

	// Property 5: aggregate totals never exceed the distinct pair count
	properties.Property("aggregates are bounded by distinct pairs", prop.ForAll(
		func(controls []catalog.Control) bool {
			in := Input{PrimaryFramework: testCSF, Controls: controls}
			for i, c := range controls {
				in.ComparisonEdges = append(in.ComparisonEdges, catalog.MappingEdge{
					ID:                fmt.Sprintf("e%d", i),
					CentralControlID:  fmt.Sprintf("scf%d", i%3),
					ExternalControlID: c.ID,
					FrameworkID:       testSCF.ID,
				})
				in.PrimaryEdges = append(in.PrimaryEdges, catalog.MappingEdge{
					ID:                fmt.Sprintf("p%d", i),
					CentralControlID:  fmt.Sprintf("scf%d", i%3),
					ExternalControlID: c.ID,
					FrameworkID:       testCSF.ID,
				})
			}
			q := Query{PrimaryFrameworkID: testCSF.ID, ComparisonFrameworkID: testSCF.ID, ShowAllControls: true, IncludeOrganizationalControls: true}
			result := NewEngine().Resolve(q, in)

			distinct := make(map[string]struct{})
			for _, e := range in.ComparisonEdges {
				distinct[e.PairKey()] = struct{}{}
			}
			for _, root := range result.Forest {
				if root.Aggregate != nil && root.Aggregate.TotalMappings > len(distinct) {
					return false
				}
			}
			return true
		},
		genCatalog(),
	))

	properties.TestingRun(t)
}

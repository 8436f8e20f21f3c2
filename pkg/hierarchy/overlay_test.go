package hierarchy

import (
	"testing"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
)

func TestAttachOverlaysCorrelatesThroughCentralID(t *testing.T) {
	controls := []catalog.Control{
		{ID: "c1", FrameworkID: testCSF.ID, RefCode: "GV.RM-01", Title: "Objectives"},
		{ID: "c2", FrameworkID: testCSF.ID, RefCode: "GV.RM-02", Title: "Appetite"},
	}
	primary := catalog.MappingEdge{ID: "p1", CentralControlID: "scf1", ExternalControlID: "c1", FrameworkID: testCSF.ID}
	forest, _ := buildPrimaryTree(NewResolver(), testCSF, controls, edgesFor(primary))

	comparison := []catalog.MappingEdge{
		{ID: "cmp1", CentralControlID: "scf1", ExternalControlID: "x1", FrameworkID: "fw-853"},
	}
	additional := []catalog.MappingEdge{
		{ID: "rel1", CentralControlID: "scf1", ExternalControlID: "y1", FrameworkID: testISO.ID},
		{ID: "rel2", CentralControlID: "scf1", ExternalControlID: "z1", FrameworkID: "fw-cis"},
		{ID: "rel3", CentralControlID: "scf-unknown", ExternalControlID: "z2", FrameworkID: "fw-cis"},
	}

	unmatched := attachOverlays(forest, false, comparison, additional)
	if unmatched != 1 {
		t.Errorf("unmatched overlay edges = %d, want 1", unmatched)
	}

	leaf := forest["GV"].Children["GV.RM"].Children["GV.RM-01"]
	if len(leaf.ComparisonMappings) != 1 || leaf.ComparisonMappings[0].ID != "cmp1" {
		t.Errorf("comparison mappings = %v, want [cmp1]", leaf.ComparisonMappings)
	}
	// Two additional frameworks both mapping to scf1 must both land here.
	if len(leaf.RelatedMappings) != 2 {
		t.Errorf("related mappings = %v, want rel1 and rel2", leaf.RelatedMappings)
	}

	// A leaf with no primary mappings has nothing to correlate through.
	bare := forest["GV"].Children["GV.RM"].Children["GV.RM-02"]
	if len(bare.ComparisonMappings) != 0 || len(bare.RelatedMappings) != 0 {
		t.Error("leaf without primary mappings must receive no overlay data")
	}
}

func TestAttachOverlaysGroupNodesUntouched(t *testing.T) {
	controls := []catalog.Control{
		{ID: "c1", FrameworkID: testCSF.ID, RefCode: "GV.RM-01", Title: "Objectives"},
	}
	primary := catalog.MappingEdge{ID: "p1", CentralControlID: "scf1", ExternalControlID: "c1", FrameworkID: testCSF.ID}
	forest, _ := buildPrimaryTree(NewResolver(), testCSF, controls, edgesFor(primary))

	attachOverlays(forest, false, []catalog.MappingEdge{
		{ID: "cmp1", CentralControlID: "scf1", ExternalControlID: "x1", FrameworkID: "fw-853"},
	}, nil)

	gv := forest["GV"]
	if len(gv.ComparisonMappings) != 0 || len(gv.RelatedMappings) != 0 {
		t.Error("inferred group nodes must not receive overlay data")
	}
}

func TestAttachOverlaysCentralPrimary(t *testing.T) {
	controls := []catalog.Control{
		{ID: "scf1", FrameworkID: testSCF.ID, RefCode: "GOV-01", Domain: "Governance", Title: "Program"},
		{ID: "scf2", FrameworkID: testSCF.ID, RefCode: "GOV-02", Domain: "Governance", Title: "Policies"},
	}
	forest, _ := buildPrimaryTree(NewResolver(), testSCF, controls, nil)

	comparison := []catalog.MappingEdge{
		{ID: "cmp1", CentralControlID: "scf1", ExternalControlID: "c1", FrameworkID: testCSF.ID},
	}
	additional := []catalog.MappingEdge{
		{ID: "rel1", CentralControlID: "scf1", ExternalControlID: "i1", FrameworkID: testISO.ID},
	}

	unmatched := attachOverlays(forest, true, comparison, additional)
	if unmatched != 0 {
		t.Errorf("unmatched = %d, want 0", unmatched)
	}

	gov1 := forest["Governance"].Children["GOV-01"]
	if len(gov1.ComparisonMappings) != 1 || gov1.ComparisonMappings[0].ID != "cmp1" {
		t.Errorf("central leaf comparison mappings = %v, want [cmp1]", gov1.ComparisonMappings)
	}
	if len(gov1.RelatedMappings) != 1 || gov1.RelatedMappings[0].ID != "rel1" {
		t.Errorf("central leaf related mappings = %v, want [rel1]", gov1.RelatedMappings)
	}

	gov2 := forest["Governance"].Children["GOV-02"]
	if len(gov2.ComparisonMappings) != 0 {
		t.Error("unmapped central leaf should stay empty")
	}
}

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
	"github.com/dd0wney/cluso-crosswalk/pkg/hierarchy"
)

func sampleForest() hierarchy.Forest {
	leaf := &hierarchy.Node{
		RefCode:   "GV.RM-01",
		Label:     "Risk management objectives",
		IsLeaf:    true,
		ControlID: "c1",
		ComparisonMappings: []catalog.MappingEdge{
			{ID: "e1", CentralControlID: "s1", ExternalControlID: "c1", FrameworkID: "fw-scf"},
		},
		Aggregate: &hierarchy.Aggregate{TotalMappings: 1, DistinctFrameworks: []string{"fw-scf"}, HasAnyMapping: true},
	}
	cat := &hierarchy.Node{
		RefCode:   "GV.RM",
		Label:     "Risk Management Strategy",
		Children:  map[string]*hierarchy.Node{"GV.RM-01": leaf},
		Aggregate: &hierarchy.Aggregate{TotalMappings: 1, DistinctFrameworks: []string{"fw-scf"}, HasAnyMapping: true},
	}
	root := &hierarchy.Node{
		RefCode:   "GV",
		Label:     "Govern",
		Children:  map[string]*hierarchy.Node{"GV.RM": cat},
		Aggregate: &hierarchy.Aggregate{TotalMappings: 1, DistinctFrameworks: []string{"fw-scf"}, HasAnyMapping: true},
	}
	return hierarchy.Forest{"GV": root}
}

func TestFlatten(t *testing.T) {
	rows := Flatten(sampleForest())
	if len(rows) != 3 {
		t.Fatalf("flattened to %d rows, want 3", len(rows))
	}

	if rows[0].RefCode != "GV" || rows[0].Depth != 0 {
		t.Errorf("row 0 = %+v, want GV at depth 0", rows[0])
	}
	if rows[1].RefCode != "GV.RM" || rows[1].Depth != 1 {
		t.Errorf("row 1 = %+v, want GV.RM at depth 1", rows[1])
	}
	if rows[2].RefCode != "GV.RM-01" || rows[2].Depth != 2 {
		t.Errorf("row 2 = %+v, want GV.RM-01 at depth 2", rows[2])
	}
	if !rows[2].IsLeaf || rows[2].ComparisonMappings != 1 || rows[2].TotalMappings != 1 {
		t.Errorf("leaf row = %+v, want mapped leaf", rows[2])
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(sampleForest(), "csv", &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(records) != 4 { // header + 3 rows
		t.Fatalf("got %d CSV records, want 4", len(records))
	}
	if records[0][0] != "ref_code" {
		t.Errorf("header = %v", records[0])
	}
	// Third data row is the leaf, indented two levels.
	if records[3][0] != "    GV.RM-01" {
		t.Errorf("leaf ref code = %q, want indented GV.RM-01", records[3][0])
	}
	if records[3][2] != "true" {
		t.Errorf("leaf is_leaf = %q, want true", records[3][2])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(sampleForest(), "json", &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var rows []Row
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("Failed to decode JSON: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3", len(rows))
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(sampleForest(), "xml", &buf)
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("err = %v, want unsupported format error", err)
	}
}

func TestFlattenEmptyForest(t *testing.T) {
	if rows := Flatten(hierarchy.Forest{}); len(rows) != 0 {
		t.Errorf("empty forest flattened to %d rows", len(rows))
	}
}

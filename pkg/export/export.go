// Package export flattens resolved crosswalk trees into report formats
// consumed outside the explorer UI.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-crosswalk/pkg/hierarchy"
)

// Row is one flattened tree node.
type Row struct {
	Depth              int    `json:"depth"`
	RefCode            string `json:"refCode"`
	Label              string `json:"label"`
	IsLeaf             bool   `json:"isLeaf"`
	PrimaryMappings    int    `json:"primaryMappings"`
	ComparisonMappings int    `json:"comparisonMappings"`
	RelatedMappings    int    `json:"relatedMappings"`
	TotalMappings      int    `json:"totalMappings"`
	DistinctFrameworks int    `json:"distinctFrameworks"`
}

// Flatten walks the forest depth-first in ref-code order and returns one
// row per node.
func Flatten(forest hierarchy.Forest) []Row {
	var rows []Row
	var visit func(n *hierarchy.Node, depth int)
	visit = func(n *hierarchy.Node, depth int) {
		row := Row{
			Depth:              depth,
			RefCode:            n.RefCode,
			Label:              n.Label,
			IsLeaf:             n.IsLeaf,
			PrimaryMappings:    len(n.PrimaryMappings),
			ComparisonMappings: len(n.ComparisonMappings),
			RelatedMappings:    len(n.RelatedMappings),
		}
		if n.Aggregate != nil {
			row.TotalMappings = n.Aggregate.TotalMappings
			row.DistinctFrameworks = len(n.Aggregate.DistinctFrameworks)
		}
		rows = append(rows, row)
		for _, c := range n.SortedChildren() {
			visit(c, depth+1)
		}
	}
	for _, root := range forest.SortedRoots() {
		visit(root, 0)
	}
	return rows
}

// Write exports the forest in the requested format.
func Write(forest hierarchy.Forest, format string, writer io.Writer) error {
	switch format {
	case "json":
		return writeJSON(forest, writer)
	case "csv":
		return writeCSV(forest, writer)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeJSON(forest hierarchy.Forest, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Flatten(forest))
}

func writeCSV(forest hierarchy.Forest, writer io.Writer) error {
	w := csv.NewWriter(writer)
	header := []string{
		"ref_code", "label", "is_leaf", "depth",
		"primary_mappings", "comparison_mappings", "related_mappings",
		"total_mappings", "distinct_frameworks",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range Flatten(forest) {
		// Indent ref codes so the hierarchy survives in spreadsheet views.
		record := []string{
			strings.Repeat("  ", row.Depth) + row.RefCode,
			row.Label,
			strconv.FormatBool(row.IsLeaf),
			strconv.Itoa(row.Depth),
			strconv.Itoa(row.PrimaryMappings),
			strconv.Itoa(row.ComparisonMappings),
			strconv.Itoa(row.RelatedMappings),
			strconv.Itoa(row.TotalMappings),
			strconv.Itoa(row.DistinctFrameworks),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

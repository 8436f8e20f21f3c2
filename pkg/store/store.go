// Package store is the engine's data source: frameworks, controls, and
// mapping edges as flat records. The crosswalk engine itself does no I/O;
// a Store materializes everything a resolve needs up front.
package store

import (
	"context"
	"errors"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
	"github.com/dd0wney/cluso-crosswalk/pkg/hierarchy"
)

var (
	// ErrFrameworkNotFound is returned when a framework ID or code does
	// not exist in the store.
	ErrFrameworkNotFound = errors.New("framework not found")

	// ErrControlNotFound is returned when a control ID does not exist.
	ErrControlNotFound = errors.New("control not found")
)

// Store is the read path the crosswalk engine is fed from.
type Store interface {
	ListFrameworks(ctx context.Context) ([]catalog.Framework, error)
	GetFramework(ctx context.Context, id string) (catalog.Framework, error)

	// ListControls returns all controls of one framework in stable
	// ref-code order.
	ListControls(ctx context.Context, frameworkID string) ([]catalog.Control, error)

	// ListEdges returns all mapping edges whose external side belongs to
	// the given framework.
	ListEdges(ctx context.Context, frameworkID string) ([]catalog.MappingEdge, error)
}

// LoadInput assembles the fully materialized input for a crosswalk query
// from a store. When the primary framework is the central taxonomy, the
// overlay is attached directly by control identity, so no primary edge
// set is fetched.
func LoadInput(ctx context.Context, s Store, q hierarchy.Query) (hierarchy.Input, error) {
	var in hierarchy.Input

	fw, err := s.GetFramework(ctx, q.PrimaryFrameworkID)
	if err != nil {
		return in, err
	}
	in.PrimaryFramework = fw

	in.Controls, err = s.ListControls(ctx, q.PrimaryFrameworkID)
	if err != nil {
		return in, err
	}

	if !fw.IsCentral() {
		in.PrimaryEdges, err = s.ListEdges(ctx, q.PrimaryFrameworkID)
		if err != nil {
			return in, err
		}
	}

	if q.ComparisonFrameworkID != "" {
		in.ComparisonEdges, err = loadOverlayEdges(ctx, s, q.ComparisonFrameworkID, q.PrimaryFrameworkID)
		if err != nil {
			return in, err
		}
	}
	for _, id := range q.AdditionalFrameworkIDs {
		edges, err := loadOverlayEdges(ctx, s, id, q.PrimaryFrameworkID)
		if err != nil {
			return in, err
		}
		in.AdditionalEdges = append(in.AdditionalEdges, edges...)
	}
	return in, nil
}

// loadOverlayEdges fetches one overlay framework's edge set. Selecting
// the central taxonomy as an overlay means "show me the crosswalk to the
// taxonomy itself": edges are always stored central-to-external, so the
// primary framework's own edge set is what correlates.
func loadOverlayEdges(ctx context.Context, s Store, overlayID, primaryID string) ([]catalog.MappingEdge, error) {
	fw, err := s.GetFramework(ctx, overlayID)
	if err != nil {
		return nil, err
	}
	if fw.IsCentral() {
		return s.ListEdges(ctx, primaryID)
	}
	return s.ListEdges(ctx, overlayID)
}

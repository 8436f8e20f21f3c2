package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
)

// CreateFramework stores a new framework. An empty ID is filled in.
func (s *PGStore) CreateFramework(ctx context.Context, fw *catalog.Framework) (err error) {
	start := time.Now()
	defer func() { s.observe("create_framework", start, err) }()

	if fw.ID == "" {
		fw.ID = uuid.NewString()
	}

	query := `
		INSERT INTO frameworks (id, code, name, version)
		VALUES ($1, $2, $3, $4)
	`

	_, err = s.pool.Exec(ctx, query, fw.ID, fw.Code, fw.Name, fw.Version)
	if err != nil {
		return fmt.Errorf("failed to create framework: %w", err)
	}
	return nil
}

// CreateControl stores a new control. An empty ID is filled in.
func (s *PGStore) CreateControl(ctx context.Context, c *catalog.Control) (err error) {
	start := time.Now()
	defer func() { s.observe("create_control", start, err) }()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO controls (id, framework_id, ref_code, title, description, domain, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
	`

	_, err = s.pool.Exec(ctx, query,
		c.ID,
		c.FrameworkID,
		c.RefCode,
		c.Title,
		c.Description,
		c.Domain,
		c.ParentID,
	)
	if err != nil {
		return fmt.Errorf("failed to create control: %w", err)
	}
	return nil
}

// CreateEdge stores a new mapping edge. An empty ID is filled in. The
// (central, external) pair is unique; redundant loads are rejected by
// the store, though the engine tolerates duplicates regardless.
func (s *PGStore) CreateEdge(ctx context.Context, e *catalog.MappingEdge) (err error) {
	start := time.Now()
	defer func() { s.observe("create_edge", start, err) }()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Strength == "" {
		e.Strength = catalog.StrengthExact
	}

	query := `
		INSERT INTO mapping_edges (id, central_control_id, external_control_id, framework_id, mapping_strength, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = s.pool.Exec(ctx, query,
		e.ID,
		e.CentralControlID,
		e.ExternalControlID,
		e.FrameworkID,
		e.Strength,
		e.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to create mapping edge: %w", err)
	}
	return nil
}

// ListFrameworks returns all frameworks ordered by code and version.
func (s *PGStore) ListFrameworks(ctx context.Context) (frameworks []catalog.Framework, err error) {
	start := time.Now()
	defer func() { s.observe("list_frameworks", start, err) }()

	query := `
		SELECT id, code, name, version
		FROM frameworks
		ORDER BY code, version
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list frameworks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fw catalog.Framework
		if err := rows.Scan(&fw.ID, &fw.Code, &fw.Name, &fw.Version); err != nil {
			return nil, fmt.Errorf("failed to scan framework: %w", err)
		}
		frameworks = append(frameworks, fw)
	}
	return frameworks, rows.Err()
}

// GetFramework retrieves a framework by ID.
func (s *PGStore) GetFramework(ctx context.Context, id string) (fw catalog.Framework, err error) {
	start := time.Now()
	defer func() { s.observe("get_framework", start, err) }()

	query := `
		SELECT id, code, name, version
		FROM frameworks
		WHERE id = $1
	`

	err = s.pool.QueryRow(ctx, query, id).Scan(&fw.ID, &fw.Code, &fw.Name, &fw.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return fw, fmt.Errorf("%w: %s", ErrFrameworkNotFound, id)
	}
	if err != nil {
		return fw, fmt.Errorf("failed to get framework: %w", err)
	}
	return fw, nil
}

// ListControls returns all controls of one framework in ref-code order.
func (s *PGStore) ListControls(ctx context.Context, frameworkID string) (controls []catalog.Control, err error) {
	start := time.Now()
	defer func() { s.observe("list_controls", start, err) }()

	query := `
		SELECT id, framework_id, ref_code, title, description, domain, COALESCE(parent_id, '')
		FROM controls
		WHERE framework_id = $1
		ORDER BY ref_code
	`

	rows, err := s.pool.Query(ctx, query, frameworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list controls: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c catalog.Control
		if err := rows.Scan(&c.ID, &c.FrameworkID, &c.RefCode, &c.Title, &c.Description, &c.Domain, &c.ParentID); err != nil {
			return nil, fmt.Errorf("failed to scan control: %w", err)
		}
		controls = append(controls, c)
	}
	return controls, rows.Err()
}

// ListEdges returns all mapping edges whose external side belongs to the
// given framework.
func (s *PGStore) ListEdges(ctx context.Context, frameworkID string) (edges []catalog.MappingEdge, err error) {
	start := time.Now()
	defer func() { s.observe("list_edges", start, err) }()

	query := `
		SELECT id, central_control_id, external_control_id, framework_id, mapping_strength, notes
		FROM mapping_edges
		WHERE framework_id = $1
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query, frameworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mapping edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e catalog.MappingEdge
		if err := rows.Scan(&e.ID, &e.CentralControlID, &e.ExternalControlID, &e.FrameworkID, &e.Strength, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan mapping edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

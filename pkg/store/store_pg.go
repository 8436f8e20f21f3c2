package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/cluso-crosswalk/pkg/metrics"
)

// PGStore serves the catalog from PostgreSQL.
type PGStore struct {
	pool    *pgxpool.Pool
	metrics *metrics.Registry
}

// NewPGStore creates a PostgreSQL-backed catalog store.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pooling configuration
	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool, metrics: metrics.DefaultRegistry()}

	// Create tables if they don't exist
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

// observe records one store query for the metrics registry.
func (s *PGStore) observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordStoreQuery(operation, status, time.Since(start))
}

// Ping checks database connectivity
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS frameworks (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		version TEXT NOT NULL DEFAULT '',
		UNIQUE(code, version)
	);

	CREATE TABLE IF NOT EXISTS controls (
		id TEXT PRIMARY KEY,
		framework_id TEXT NOT NULL REFERENCES frameworks(id) ON DELETE CASCADE,
		ref_code TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		domain TEXT NOT NULL DEFAULT '',
		parent_id TEXT,
		UNIQUE(framework_id, ref_code)
	);

	CREATE TABLE IF NOT EXISTS mapping_edges (
		id TEXT PRIMARY KEY,
		central_control_id TEXT NOT NULL REFERENCES controls(id) ON DELETE CASCADE,
		external_control_id TEXT NOT NULL REFERENCES controls(id) ON DELETE CASCADE,
		framework_id TEXT NOT NULL REFERENCES frameworks(id) ON DELETE CASCADE,
		mapping_strength TEXT NOT NULL DEFAULT 'exact',
		notes TEXT NOT NULL DEFAULT '',
		UNIQUE(central_control_id, external_control_id)
	);

	CREATE INDEX IF NOT EXISTS idx_controls_framework_id ON controls(framework_id);
	CREATE INDEX IF NOT EXISTS idx_controls_parent_id ON controls(parent_id);
	CREATE INDEX IF NOT EXISTS idx_edges_framework_id ON mapping_edges(framework_id);
	CREATE INDEX IF NOT EXISTS idx_edges_central_control_id ON mapping_edges(central_control_id);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
)

// MemoryStore is an in-memory Store for tests, demos, and fixture
// loading. Safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	frameworks map[string]catalog.Framework
	controls   map[string]catalog.Control
	edges      map[string]catalog.MappingEdge
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		frameworks: make(map[string]catalog.Framework),
		controls:   make(map[string]catalog.Control),
		edges:      make(map[string]catalog.MappingEdge),
	}
}

// AddFramework stores a framework, filling in an empty ID, and returns it.
func (m *MemoryStore) AddFramework(fw catalog.Framework) catalog.Framework {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fw.ID == "" {
		fw.ID = uuid.NewString()
	}
	m.frameworks[fw.ID] = fw
	return fw
}

// AddControl stores a control, filling in an empty ID, and returns it.
func (m *MemoryStore) AddControl(c catalog.Control) catalog.Control {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m.controls[c.ID] = c
	return c
}

// AddEdge stores a mapping edge, filling in an empty ID and a default
// strength, and returns it. Unlike PostgreSQL, the memory store does not
// enforce pair uniqueness; tests rely on that to exercise the engine's
// duplicate tolerance.
func (m *MemoryStore) AddEdge(e catalog.MappingEdge) catalog.MappingEdge {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Strength == "" {
		e.Strength = catalog.StrengthExact
	}
	m.edges[e.ID] = e
	return e
}

// ListFrameworks returns all frameworks ordered by code and version.
func (m *MemoryStore) ListFrameworks(ctx context.Context) ([]catalog.Framework, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]catalog.Framework, 0, len(m.frameworks))
	for _, fw := range m.frameworks {
		out = append(out, fw)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].Version < out[j].Version
	})
	return out, nil
}

// GetFramework retrieves a framework by ID.
func (m *MemoryStore) GetFramework(ctx context.Context, id string) (catalog.Framework, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fw, ok := m.frameworks[id]
	if !ok {
		return fw, fmt.Errorf("%w: %s", ErrFrameworkNotFound, id)
	}
	return fw, nil
}

// ListControls returns all controls of one framework in ref-code order.
func (m *MemoryStore) ListControls(ctx context.Context, frameworkID string) ([]catalog.Control, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []catalog.Control
	for _, c := range m.controls {
		if c.FrameworkID == frameworkID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RefCode < out[j].RefCode })
	return out, nil
}

// ListEdges returns all mapping edges whose external side belongs to the
// given framework, in ID order.
func (m *MemoryStore) ListEdges(ctx context.Context, frameworkID string) ([]catalog.MappingEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []catalog.MappingEdge
	for _, e := range m.edges {
		if e.FrameworkID == frameworkID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

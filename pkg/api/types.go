package api

import (
	"time"

	"github.com/dd0wney/cluso-crosswalk/pkg/catalog"
	"github.com/dd0wney/cluso-crosswalk/pkg/hierarchy"
)

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// FrameworksResponse is returned by GET /frameworks
type FrameworksResponse struct {
	Frameworks []catalog.Framework `json:"frameworks"`
	Count      int                 `json:"count"`
}

// ControlsResponse is returned by GET /frameworks/{id}/controls
type ControlsResponse struct {
	FrameworkID string            `json:"frameworkId"`
	Controls    []catalog.Control `json:"controls"`
	Count       int               `json:"count"`
}

// CoverageSummary mirrors the dashboard counts for one resolve: how many
// leaf controls in the resolved tree carry at least one overlay mapping.
type CoverageSummary struct {
	TotalControls   int     `json:"totalControls"`
	MappedControls  int     `json:"mappedControls"`
	CoveragePercent float64 `json:"coveragePercent"`
}

// CrosswalkResponse is returned by POST /crosswalk. Roots and children
// are ordered by ref code so the renderer sees a stable shape.
type CrosswalkResponse struct {
	Tree     []*hierarchy.Node  `json:"tree"`
	Warnings hierarchy.Warnings `json:"warnings"`
	Summary  CoverageSummary    `json:"summary"`
	Took     string             `json:"took"`
}

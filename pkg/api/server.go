package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-crosswalk/pkg/hierarchy"
	"github.com/dd0wney/cluso-crosswalk/pkg/logging"
	"github.com/dd0wney/cluso-crosswalk/pkg/metrics"
	"github.com/dd0wney/cluso-crosswalk/pkg/store"
)

// Server represents the HTTP API server
type Server struct {
	store     store.Store
	engine    *hierarchy.Engine
	metrics   *metrics.Registry
	logger    logging.Logger
	jwtSecret []byte
	startTime time.Time
	version   string
	port      int
}

// NewServer creates a new API server
func NewServer(st store.Store, port int) *Server {
	return &Server{
		store:     st,
		engine:    hierarchy.NewEngine(),
		metrics:   metrics.DefaultRegistry(),
		logger:    logging.DefaultLogger().With(logging.Component("api")),
		startTime: time.Now(),
		version:   "1.0.0",
		port:      port,
	}
}

// SetJWTSecret enables bearer-token authentication on the API. With no
// secret configured the API is open, which is only appropriate behind a
// trusted gateway.
func (s *Server) SetJWTSecret(secret []byte) {
	s.jwtSecret = secret
}

// Handler builds the full route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.PrometheusRegistry(), promhttp.HandlerOpts{}))

	// Catalog endpoints
	mux.HandleFunc("/frameworks", s.requireAuth(s.handleFrameworks))
	mux.HandleFunc("/frameworks/", s.requireAuth(s.handleFramework)) // /frameworks/{id}[/controls]

	// Crosswalk explorer endpoints
	mux.HandleFunc("/crosswalk", s.requireAuth(s.handleCrosswalk))
	mux.HandleFunc("/crosswalk/export", s.requireAuth(s.handleCrosswalkExport))

	return s.panicRecoveryMiddleware(s.loggingMiddleware(s.metricsMiddleware(s.corsMiddleware(mux))))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("🚀 Cluso Crosswalk API Server starting on %s", addr)
	log.Printf("📖 API Documentation:")
	log.Printf("   Health:       GET  %s/health", addr)
	log.Printf("   Metrics:      GET  %s/metrics", addr)
	log.Printf("   Frameworks:   GET  %s/frameworks", addr)
	log.Printf("   Controls:     GET  %s/frameworks/{id}/controls", addr)
	log.Printf("   Crosswalk:    POST %s/crosswalk", addr)
	log.Printf("   Export:       GET  %s/crosswalk/export", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

// Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
	}
	s.respondJSON(w, http.StatusOK, response)
}

// Response helpers

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}

// sanitizeError converts an internal error to a user-safe message.
// Internal details are logged but not exposed.
func sanitizeError(err error, operation string) string {
	if err == nil {
		return ""
	}
	log.Printf("ERROR [%s]: %v", operation, err)
	return fmt.Sprintf("%s failed", operation)
}

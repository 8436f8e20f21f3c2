package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dd0wney/cluso-crosswalk/pkg/store"
)

func (s *Server) handleFrameworks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	frameworks, err := s.store.ListFrameworks(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, sanitizeError(err, "list frameworks"))
		return
	}

	s.respondJSON(w, http.StatusOK, FrameworksResponse{
		Frameworks: frameworks,
		Count:      len(frameworks),
	})
}

// handleFramework serves /frameworks/{id} and /frameworks/{id}/controls
func (s *Server) handleFramework(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/frameworks/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		s.respondError(w, http.StatusBadRequest, "Framework ID required")
		return
	}

	switch sub {
	case "":
		fw, err := s.store.GetFramework(r.Context(), id)
		if errors.Is(err, store.ErrFrameworkNotFound) {
			s.respondError(w, http.StatusNotFound, "Framework not found")
			return
		}
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, sanitizeError(err, "get framework"))
			return
		}
		s.respondJSON(w, http.StatusOK, fw)

	case "controls":
		if _, err := s.store.GetFramework(r.Context(), id); errors.Is(err, store.ErrFrameworkNotFound) {
			s.respondError(w, http.StatusNotFound, "Framework not found")
			return
		} else if err != nil {
			s.respondError(w, http.StatusInternalServerError, sanitizeError(err, "get framework"))
			return
		}

		controls, err := s.store.ListControls(r.Context(), id)
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, sanitizeError(err, "list controls"))
			return
		}
		s.respondJSON(w, http.StatusOK, ControlsResponse{
			FrameworkID: id,
			Controls:    controls,
			Count:       len(controls),
		})

	default:
		s.respondError(w, http.StatusNotFound, "Not found")
	}
}

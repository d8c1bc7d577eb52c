package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleAthletes(w http.ResponseWriter, r *http.Request) {
	names, err := s.deps.Athletes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// athleteName returns the decoded {name} parameter. chi routes on the raw
// path when the request carries one (e.g. an escaped "/"), leaving the
// parameter escaped.
func athleteName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", fmt.Errorf("%w: malformed athlete name", ErrBadRequest)
	}
	return decoded, nil
}

// handleAthlete serves GET /api/athletes/{name}. Unknown athletes get the
// zero detail with 200.
func (s *Server) handleAthlete(w http.ResponseWriter, r *http.Request) {
	name, err := athleteName(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	detail, err := s.deps.Athlete(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleAthleteGrades serves GET /api/athletes/{name}/grades?label=X.
func (s *Server) handleAthleteGrades(w http.ResponseWriter, r *http.Request) {
	label := r.URL.Query().Get("label")
	if strings.TrimSpace(label) == "" {
		s.writeError(w, r, fmt.Errorf("%w: missing label", ErrBadRequest))
		return
	}
	name, err := athleteName(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	grades, err := s.deps.AthleteGrades(r.Context(), name, label)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grades)
}

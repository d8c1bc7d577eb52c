package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/cadenas/internal/domain/aggregate"
)

func (s *Server) handleBonus(w http.ResponseWriter, r *http.Request) {
	b, err := s.deps.Bonus(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// parseSelector reads ?label=X or ?discipline=route|boulder. A label wins
// when both are given.
func parseSelector(r *http.Request) (aggregate.Selector, error) {
	q := r.URL.Query()
	if label := q.Get("label"); label != "" {
		return aggregate.ByLabel(label), nil
	}
	switch strings.ToLower(q.Get("discipline")) {
	case "route":
		return aggregate.AllRoutes(), nil
	case "boulder":
		return aggregate.AllBoulders(), nil
	case "":
		return aggregate.Selector{}, fmt.Errorf("%w: label or discipline is required", ErrBadRequest)
	default:
		return aggregate.Selector{}, fmt.Errorf("%w: discipline must be route or boulder", ErrBadRequest)
	}
}

// handleDrillDown serves GET /api/bonus/drilldown.
func (s *Server) handleDrillDown(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelector(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.deps.DrillDown(r.Context(), sel)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

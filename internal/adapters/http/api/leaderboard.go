package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// parseLimit reads ?limit. Absent means 0; anything that is not an integer
// in [1, max] is a bad request.
func parseLimit(r *http.Request, maxLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)
	}
	if n > maxLimit {
		return 0, fmt.Errorf("%w: limit exceeds %d", ErrBadRequest, maxLimit)
	}
	return n, nil
}

// handleLeaderboard serves GET /api/leaderboard?limit=N.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	n, err := parseLimit(r, s.maxLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	entries, err := s.deps.Leaderboard(r.Context(), n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleRecent serves GET /api/recent?limit=N.
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	n, err := parseLimit(r, s.maxLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	climbs, err := s.deps.Recent(r.Context(), n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, climbs)
}

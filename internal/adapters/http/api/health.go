package api

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status      string     `json:"status"`
	Records     int        `json:"records"`
	LastRefresh *time.Time `json:"last_refresh,omitempty"`
}

// handleHealth reports liveness. The service is healthy before the first
// delivery too; status says whether data is being served.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.deps.GetStats(r.Context())
	resp := healthResponse{Status: "waiting", Records: stats.Records}
	if stats.HasData {
		resp.Status = "ok"
	}
	if stats.LastRefresh != nil {
		at := stats.LastRefresh.At
		resp.LastRefresh = &at
	}
	writeJSON(w, http.StatusOK, resp)
}

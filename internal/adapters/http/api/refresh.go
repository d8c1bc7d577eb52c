package api

import (
	"net/http"

	"github.com/okian/cadenas/pkg/logger"
)

type refreshResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
}

// handleRefresh serves POST /api/refresh. The refresh runs asynchronously.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	id, err := s.deps.RequestRefresh(r.Context(), "manual")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "manual refresh accepted", logger.String("request_id", id))
	writeJSON(w, http.StatusAccepted, refreshResponse{Status: "accepted", RequestID: id})
}

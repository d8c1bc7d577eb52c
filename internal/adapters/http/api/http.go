// Package api exposes the climbing results over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/cadenas/internal/domain/aggregate"
	"github.com/okian/cadenas/internal/domain/types"
	"github.com/okian/cadenas/pkg/logger"
	"github.com/okian/cadenas/pkg/metrics"
)

const corsMaxAge = 300

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Leaderboard(ctx context.Context, limit int) ([]types.LeaderboardEntry, error)
	Athletes(ctx context.Context) ([]string, error)
	Bonus(ctx context.Context) (types.BonusResponse, error)
	DrillDown(ctx context.Context, sel aggregate.Selector) (types.DrillDownResponse, error)
	Athlete(ctx context.Context, name string) (types.AthleteResponse, error)
	AthleteGrades(ctx context.Context, name, label string) (types.GradesResponse, error)
	Recent(ctx context.Context, limit int) ([]types.Climb, error)
	RequestRefresh(ctx context.Context, reason string) (string, error)
	GetStats(ctx context.Context) types.Stats
}

// Server wires HTTP routes for the results API.
type Server struct {
	deps           Dependencies
	maxLimit       int
	allowedOrigins []string
	logger         logger.Logger
}

// NewServer creates an API server.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:           deps,
		maxLimit:       defaultMaxLimit,
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("http")
	}
	return s
}

// Router builds the chi router with every route attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         corsMaxAge,
	}))
	r.Use(MetricsMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/athletes", s.handleAthletes)
		r.Get("/athletes/{name}", s.handleAthlete)
		r.Get("/athletes/{name}/grades", s.handleAthleteGrades)
		r.Get("/bonus", s.handleBonus)
		r.Get("/bonus/drilldown", s.handleDrillDown)
		r.Get("/recent", s.handleRecent)
		r.Post("/refresh", s.handleRefresh)
	})
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}

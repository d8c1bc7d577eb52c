package api

import "github.com/okian/cadenas/pkg/logger"

const defaultMaxLimit = 500

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxLimit caps the leaderboard and recent feed limits.
func WithMaxLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithAllowedOrigins sets the CORS allowed origins.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = append([]string(nil), origins...)
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

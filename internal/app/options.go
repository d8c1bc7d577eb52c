package service

import (
	"time"

	"github.com/okian/cadenas/internal/adapters/mq/worker"
	"github.com/okian/cadenas/internal/domain/bonus"
	"github.com/okian/cadenas/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the source of raw sheet rows.
func WithFetcher(f worker.Fetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

// WithRowCache enables restoring the last good rows at startup.
func WithRowCache(c worker.RowCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithQueueSize sets the maximum number of pending refresh requests.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithRefreshInterval schedules periodic refreshes. Zero disables them.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.refreshInterval = d
		}
	}
}

// WithRecentLimits sets the feed, slice and athlete recency windows.
// Non-positive values keep the defaults.
func WithRecentLimits(feed, slice, athlete int) Option {
	return func(s *Service) {
		if feed > 0 {
			s.recentLimit = feed
		}
		if slice > 0 {
			s.sliceRecentLimit = slice
		}
		if athlete > 0 {
			s.athleteRecentLimit = athlete
		}
	}
}

// WithDateLayouts sets the layouts tried when parsing the date column.
func WithDateLayouts(layouts []string) Option {
	return func(s *Service) {
		if len(layouts) > 0 {
			s.dateLayouts = layouts
		}
	}
}

// WithBonusEntries extends or overrides the built-in bonus table.
func WithBonusEntries(entries []bonus.Entry) Option {
	return func(s *Service) { s.bonusEntries = entries }
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Package config defines service configuration and how it is loaded.
//
// Values are layered: defaults from New, then an optional YAML file named by
// CADENAS_CONFIG, then CADENAS_* environment variables. Keys are flat
// snake_case names matching the koanf tags below.
package config

import (
	"time"

	"github.com/okian/cadenas/internal/domain/bonus"
	"github.com/okian/cadenas/internal/domain/model"
	"github.com/okian/cadenas/internal/domain/normalize"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFile enables a rotated log file next to stdout when set.
	LogFile       string `koanf:"log_file"`
	LogMaxSizeMB  int    `koanf:"log_max_size_mb" validate:"gte=0"`
	LogMaxBackups int    `koanf:"log_max_backups" validate:"gte=0"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// Spreadsheet access. The key and id are checked when the fetcher is built.
	SheetsAPIKey   string `koanf:"sheets_api_key"`
	SpreadsheetID  string `koanf:"spreadsheet_id"`
	SheetRange     string `koanf:"sheet_range" validate:"required"`
	SheetsEndpoint string `koanf:"sheets_endpoint" validate:"omitempty,url"`

	FetchTimeoutMS     int `koanf:"fetch_timeout_ms" validate:"gt=0"`
	FetchMinIntervalMS int `koanf:"fetch_min_interval_ms" validate:"gte=0"`

	// RefreshIntervalSec schedules periodic refreshes; 0 disables the ticker.
	RefreshIntervalSec int `koanf:"refresh_interval_sec" validate:"gte=0"`
	RefreshQueueSize   int `koanf:"refresh_queue_size" validate:"gt=0"`

	// RedisURL enables the last-good row cache when set.
	RedisURL    string `koanf:"redis_url" validate:"omitempty,url"`
	CacheTTLSec int    `koanf:"cache_ttl_sec" validate:"gte=0"`

	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// MaxLeaderboardLimit caps GET /api/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit" validate:"gt=0"`
	RecentLimit         int `koanf:"recent_limit" validate:"gt=0"`
	SliceRecentLimit    int `koanf:"slice_recent_limit" validate:"gt=0"`
	AthleteRecentLimit  int `koanf:"athlete_recent_limit" validate:"gt=0"`

	// DateLayouts are tried in order when parsing the date column.
	DateLayouts []string `koanf:"date_layouts" validate:"min=1,dive,required"`

	// ExtraBonusCodes extend or override the built-in bonus table.
	ExtraBonusCodes []BonusCode `koanf:"extra_bonus_codes" validate:"dive"`
}

// BonusCode is one configured bonus table entry.
type BonusCode struct {
	Code       string `koanf:"code" validate:"required"`
	Label      string `koanf:"label" validate:"required"`
	Discipline string `koanf:"discipline" validate:"oneof=Route Boulder"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogMaxSizeMB:        50,
		LogMaxBackups:       3,
		Addr:                ":9080",
		SheetRange:          "cadenas1!A2:O",
		FetchTimeoutMS:      10_000,
		FetchMinIntervalMS:  2_000,
		RefreshIntervalSec:  60,
		RefreshQueueSize:    8,
		CacheTTLSec:         86_400,
		CORSAllowedOrigins:  []string{"*"},
		MaxLeaderboardLimit: 500,
		RecentLimit:         10,
		SliceRecentLimit:    20,
		AthleteRecentLimit:  15,
		DateLayouts:         append([]string(nil), normalize.DefaultDateLayouts...),
	}
}

// FetchTimeout bounds a single sheet retrieval.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// FetchMinInterval is the minimum spacing between two sheet retrievals.
func (c *Config) FetchMinInterval() time.Duration {
	return time.Duration(c.FetchMinIntervalMS) * time.Millisecond
}

// RefreshInterval is the periodic refresh cadence; zero means disabled.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSec) * time.Second
}

// CacheTTL is how long cached rows stay valid; zero means no expiry.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// BonusEntries converts the configured extra codes into classifier entries.
func (c *Config) BonusEntries() []bonus.Entry {
	out := make([]bonus.Entry, 0, len(c.ExtraBonusCodes))
	for _, bc := range c.ExtraBonusCodes {
		out = append(out, bonus.Entry{
			Code:       bc.Code,
			Label:      bc.Label,
			Discipline: model.Discipline(bc.Discipline),
		})
	}
	return out
}

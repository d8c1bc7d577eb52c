// Package resultscheck drives a running cadenas service over HTTP and
// cross-checks the views it serves against each other.
package resultscheck

import "time"

// Defaults used when a Config field is zero.
const (
	DefaultTimeout      = 10 * time.Second
	DefaultWaitTimeout  = time.Minute
	DefaultPollInterval = 500 * time.Millisecond
	DefaultWorkers      = 4
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Timeout      time.Duration // HTTP request timeout
	WaitTimeout  time.Duration // how long to wait for the requested refresh
	PollInterval time.Duration // stats polling cadence while waiting
	Workers      int           // concurrent athlete detail requests
	SkipRefresh  bool          // check the current snapshot without refreshing
	Verbose      bool
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.WaitTimeout <= 0 {
		out.WaitTimeout = DefaultWaitTimeout
	}
	if out.PollInterval <= 0 {
		out.PollInterval = DefaultPollInterval
	}
	if out.Workers <= 0 {
		out.Workers = DefaultWorkers
	}
	return out
}

// Report summarises a run.
type Report struct {
	RefreshRequestID string
	SnapshotID       string
	Records          int
	Athletes         int
	AthletesChecked  int
	Problems         []string
	Duration         time.Duration
}

// OK reports whether no inconsistency was found.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

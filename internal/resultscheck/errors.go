package resultscheck

import "errors"

// Sentinel kinds for check failures.
var (
	ErrUnhealthy      = errors.New("service unhealthy")
	ErrUnexpectedCode = errors.New("unexpected status code")
	ErrRefreshTimeout = errors.New("refresh did not complete in time")
	ErrRefreshFailed  = errors.New("refresh failed")
	ErrInconsistent   = errors.New("inconsistent results")
)

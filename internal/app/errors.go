package service

import "errors"

// Sentinel errors returned by the Service.
var (
	ErrNoData       = errors.New("no results delivered yet")
	ErrNotStarted   = errors.New("service not started")
	ErrNoFetcher    = errors.New("no sheet fetcher configured")
	ErrRefreshBusy  = errors.New("refresh queue full")
	ErrInvalidLimit = errors.New("invalid limit")
)

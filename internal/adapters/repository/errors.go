package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNoSnapshot  = errors.New("no snapshot delivered yet")
	ErrNilSnapshot = errors.New("nil snapshot")
	ErrCacheMiss   = errors.New("row cache miss")
	ErrCache       = errors.New("row cache failed")
)

// Package repository holds the current result snapshot and the last-good
// row cache.
package repository

import (
	"sync/atomic"
	"time"

	"github.com/okian/cadenas/internal/domain/model"
	"github.com/okian/cadenas/internal/domain/normalize"
)

// Snapshot sources.
const (
	SourceSheet = "sheet"
	SourceCache = "cache"
)

// Snapshot is one immutable delivery of normalized records.
// Holders must not modify Records.
type Snapshot struct {
	ID        string
	Records   []model.ClimbRecord
	Stats     normalize.Stats
	Source    string
	FetchedAt time.Time
}

// Store provides access to the current snapshot.
type Store interface {
	// Current returns the latest snapshot, or ErrNoSnapshot before the first Replace.
	Current() (*Snapshot, error)
	// Replace publishes snap as the current snapshot.
	Replace(snap *Snapshot) error
}

// SnapshotStore swaps whole snapshots atomically. Readers never block the
// writer and always see either the previous or the next delivery in full.
type SnapshotStore struct {
	current atomic.Pointer[Snapshot]
	swaps   atomic.Int64
}

// NewSnapshotStore returns an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Current implements Store.
func (s *SnapshotStore) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Replace implements Store.
func (s *SnapshotStore) Replace(snap *Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	s.current.Store(snap)
	s.swaps.Add(1)
	return nil
}

// Swaps reports how many snapshots have been published.
func (s *SnapshotStore) Swaps() int64 {
	return s.swaps.Load()
}

// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Discipline is the coarse ascent category of a climb.
type Discipline string

// Known disciplines.
const (
	Route   Discipline = "Route"
	Boulder Discipline = "Boulder"
)

// unnamedRoute is shown in place of an empty route name.
const unnamedRoute = "Unnamed route"

// ClimbRecord is one normalized logged ascent. Records are never mutated
// after normalization; aggregations share them by value.
type ClimbRecord struct {
	Athlete    string     `json:"athlete"`     // display name, used verbatim as grouping key
	Date       string     `json:"date"`        // date as logged
	RouteName  string     `json:"route_name"`  // may be empty
	Crag       string     `json:"crag"`        // free-form
	Grade      string     `json:"grade"`       // free-form
	BonusCode  string     `json:"bonus_code"`  // raw classifier key
	BonusLabel string     `json:"bonus_label"` // canonical label or BonusCode when unmapped
	Discipline Discipline `json:"discipline"`
	Points     float64    `json:"points"`

	// LoggedAt is Date parsed as a calendar date. Zero when Date could not
	// be parsed, which orders the record as the oldest.
	LoggedAt time.Time `json:"-"`
}

// DisplayRouteName returns the route name or a placeholder when empty.
func (r ClimbRecord) DisplayRouteName() string {
	if r.RouteName == "" {
		return unnamedRoute
	}
	return r.RouteName
}

// RoundedPoints returns the record's points rounded for display.
func (r ClimbRecord) RoundedPoints() int {
	return RoundPoints(r.Points)
}

// RefreshRequest asks the refresh worker to pull a new copy of the log.
type RefreshRequest struct {
	ID          string    // unique request id
	Reason      string    // e.g. "startup", "interval", "manual"
	RequestedAt time.Time // enqueue time
}

// NewRefreshRequest builds a request with a fresh id.
func NewRefreshRequest(reason string) RefreshRequest {
	return RefreshRequest{
		ID:          uuid.NewString(),
		Reason:      reason,
		RequestedAt: time.Now(),
	}
}

// Package types contains the response shapes served by the HTTP API.
package types

import (
	"time"

	"github.com/okian/cadenas/internal/domain/aggregate"
	"github.com/okian/cadenas/internal/domain/model"
)

// LeaderboardEntry is one ranked athlete. Rank is the 1-based position;
// tied athletes keep their first-encounter order and distinct ranks.
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	aggregate.AthleteAggregate
}

// Climb is a record prepared for display.
type Climb struct {
	Athlete       string           `json:"athlete"`
	Date          string           `json:"date"`
	RouteName     string           `json:"route_name"`
	Crag          string           `json:"crag"`
	Grade         string           `json:"grade"`
	BonusCode     string           `json:"bonus_code"`
	BonusLabel    string           `json:"bonus_label"`
	Discipline    model.Discipline `json:"discipline"`
	Points        float64          `json:"points"`
	RoundedPoints int              `json:"rounded_points"`
}

// BonusResponse is the bonus breakdown with tier-ordered rows.
type BonusResponse struct {
	Tiers   []aggregate.TierRow              `json:"tiers"`
	Route   map[string]aggregate.BonusBucket `json:"route"`
	Boulder map[string]aggregate.BonusBucket `json:"boulder"`
	Totals  aggregate.DisciplineTotals       `json:"totals"`
}

// DrillDownRow is one athlete within a slice.
type DrillDownRow struct {
	Rank        int     `json:"rank"`
	Athlete     string  `json:"athlete"`
	Count       int     `json:"count"`
	TotalPoints int     `json:"total_points"`
	Climbs      []Climb `json:"climbs"`
}

// DrillDownResponse ranks athletes inside one slice of the log.
type DrillDownResponse struct {
	Selection string         `json:"selection"`
	Rows      []DrillDownRow `json:"rows"`
	Recent    []Climb        `json:"recent"`
}

// AthleteResponse is the per-athlete detail view.
type AthleteResponse struct {
	Athlete       string                 `json:"athlete"`
	TotalPoints   int                    `json:"total_points"`
	TotalClimbs   int                    `json:"total_climbs"`
	AveragePoints int                    `json:"average_points"`
	BonusCounts   []aggregate.LabelCount `json:"bonus_counts"`
	Recent        []Climb                `json:"recent"`
}

// GradesResponse is the grade distribution of one athlete for one label.
type GradesResponse struct {
	Athlete   string                          `json:"athlete"`
	Label     string                          `json:"label"`
	Histogram []aggregate.GradeHistogramEntry `json:"histogram"`
	Logs      []Climb                         `json:"logs"`
}

// RefreshOutcome reports the latest refresh attempt.
type RefreshOutcome struct {
	RequestID  string    `json:"request_id"`
	Reason     string    `json:"reason"`
	At         time.Time `json:"at"`
	DurationMS int64     `json:"duration_ms"`
	Rows       int       `json:"rows"`
	Error      string    `json:"error,omitempty"`
}

// Stats describes the service and its current snapshot.
type Stats struct {
	Started          bool            `json:"started"`
	HasData          bool            `json:"has_data"`
	SnapshotID       string          `json:"snapshot_id,omitempty"`
	Source           string          `json:"source,omitempty"`
	FetchedAt        *time.Time      `json:"fetched_at,omitempty"`
	Records          int             `json:"records"`
	Athletes         int             `json:"athletes"`
	MissingAthlete   int             `json:"rows_without_athlete"`
	UnknownBonusCode int             `json:"unknown_bonus_code_rows"`
	UnparsableDate   int             `json:"unparsable_date_rows"`
	UnparsablePoints int             `json:"unparsable_points_rows"`
	QueueLength      int             `json:"queue_length"`
	LastRefresh      *RefreshOutcome `json:"last_refresh,omitempty"`
}

// ClimbFromRecord converts a record for display.
func ClimbFromRecord(r model.ClimbRecord) Climb { //nolint:gocritic // records are passed by value throughout
	return Climb{
		Athlete:       r.Athlete,
		Date:          r.Date,
		RouteName:     r.DisplayRouteName(),
		Crag:          r.Crag,
		Grade:         r.Grade,
		BonusCode:     r.BonusCode,
		BonusLabel:    r.BonusLabel,
		Discipline:    r.Discipline,
		Points:        r.Points,
		RoundedPoints: r.RoundedPoints(),
	}
}

// Climbs converts records for display, preserving order.
func Climbs(records []model.ClimbRecord) []Climb {
	out := make([]Climb, len(records))
	for i, r := range records {
		out[i] = ClimbFromRecord(r)
	}
	return out
}

// Ranked attaches 1-based positions to leaderboard rows.
func Ranked(rows []aggregate.AthleteAggregate) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(rows))
	for i, r := range rows {
		out[i] = LeaderboardEntry{Rank: i + 1, AthleteAggregate: r}
	}
	return out
}

// RankedDrillDown attaches positions and display climbs to drill-down rows.
func RankedDrillDown(rows []aggregate.DrillDownRow) []DrillDownRow {
	out := make([]DrillDownRow, len(rows))
	for i, r := range rows {
		out[i] = DrillDownRow{
			Rank:        i + 1,
			Athlete:     r.Athlete,
			Count:       r.Count,
			TotalPoints: r.TotalPoints,
			Climbs:      Climbs(r.Climbs),
		}
	}
	return out
}

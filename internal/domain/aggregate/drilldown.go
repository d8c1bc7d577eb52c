package aggregate

import (
	"sort"

	"github.com/okian/cadenas/internal/domain/model"
)

// Selector picks the slice of records a drill-down ranks: either one bonus
// label or a whole discipline.
type Selector struct {
	label      string
	discipline model.Discipline
}

// ByLabel selects records with the given bonus label.
func ByLabel(label string) Selector { return Selector{label: label} }

// AllRoutes selects every route record.
func AllRoutes() Selector { return Selector{discipline: model.Route} }

// AllBoulders selects every boulder record.
func AllBoulders() Selector { return Selector{discipline: model.Boulder} }

// Matches reports whether r falls in the selected slice.
func (s Selector) Matches(r model.ClimbRecord) bool {
	if s.discipline != "" {
		return r.Discipline == s.discipline
	}
	return r.BonusLabel == s.label
}

// String names the selection for logs and responses.
func (s Selector) String() string {
	switch s.discipline {
	case model.Route:
		return "all routes"
	case model.Boulder:
		return "all boulders"
	}
	return s.label
}

// DrillDownRow is one athlete's share of a selected slice.
type DrillDownRow struct {
	Athlete     string              `json:"athlete"`
	Count       int                 `json:"count"`
	TotalPoints int                 `json:"total_points"`
	Climbs      []model.ClimbRecord `json:"climbs"` // encounter order
}

// DrillDown ranks athletes by how many records they have in the selected
// slice, most first. An empty slice yields an empty result.
func DrillDown(records []model.ClimbRecord, sel Selector) []DrillDownRow {
	rows := make([]DrillDownRow, 0)
	sums := make([]float64, 0)
	index := make(map[string]int)

	for _, r := range records {
		if !sel.Matches(r) {
			continue
		}
		i, ok := index[r.Athlete]
		if !ok {
			i = len(rows)
			index[r.Athlete] = i
			rows = append(rows, DrillDownRow{Athlete: r.Athlete})
			sums = append(sums, 0)
		}
		rows[i].Count++
		rows[i].Climbs = append(rows[i].Climbs, r)
		sums[i] += r.Points
	}

	for i := range rows {
		rows[i].TotalPoints = model.RoundPoints(sums[i])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}

// Filter returns the records in the selected slice, in input order.
func Filter(records []model.ClimbRecord, sel Selector) []model.ClimbRecord {
	out := make([]model.ClimbRecord, 0)
	for _, r := range records {
		if sel.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

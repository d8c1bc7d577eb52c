package aggregate

import (
	"github.com/okian/cadenas/internal/domain/bonus"
	"github.com/okian/cadenas/internal/domain/model"
)

// BonusBucket counts climbs and points for one grouping.
type BonusBucket struct {
	Count  int `json:"count"`
	Points int `json:"points"`

	// RawPoints is the unrounded sum behind Points.
	RawPoints float64 `json:"-"`
}

func (b *BonusBucket) add(points float64) {
	b.Count++
	b.RawPoints += points
}

func (b *BonusBucket) finish() {
	b.Points = model.RoundPoints(b.RawPoints)
}

// DisciplineTotals holds one bucket per discipline.
type DisciplineTotals struct {
	Route   BonusBucket `json:"route"`
	Boulder BonusBucket `json:"boulder"`
}

// Breakdown is the per-label view of a record sequence.
type Breakdown struct {
	Route   map[string]BonusBucket `json:"route"`
	Boulder map[string]BonusBucket `json:"boulder"`
	Totals  DisciplineTotals       `json:"totals"`

	routeOrder   []string
	boulderOrder []string
}

// TierRow pairs the route and boulder buckets of one tier for display.
type TierRow struct {
	Tier         string      `json:"tier"`
	RouteLabel   string      `json:"route_label,omitempty"`
	Route        BonusBucket `json:"route"`
	BoulderLabel string      `json:"boulder_label,omitempty"`
	Boulder      BonusBucket `json:"boulder"`
}

// BonusBreakdown partitions records by discipline and groups each
// partition by bonus label. The totals are accumulated separately from
// the per-label buckets.
func BonusBreakdown(records []model.ClimbRecord) Breakdown {
	route := map[string]*BonusBucket{}
	boulder := map[string]*BonusBucket{}
	var b Breakdown

	for _, r := range records {
		part, order, total := route, &b.routeOrder, &b.Totals.Route
		if r.Discipline == model.Boulder {
			part, order, total = boulder, &b.boulderOrder, &b.Totals.Boulder
		}
		bucket, ok := part[r.BonusLabel]
		if !ok {
			bucket = &BonusBucket{}
			part[r.BonusLabel] = bucket
			*order = append(*order, r.BonusLabel)
		}
		bucket.add(r.Points)
		total.add(r.Points)
	}

	b.Route = finishAll(route)
	b.Boulder = finishAll(boulder)
	b.Totals.Route.finish()
	b.Totals.Boulder.finish()
	return b
}

func finishAll(in map[string]*BonusBucket) map[string]BonusBucket {
	out := make(map[string]BonusBucket, len(in))
	for label, bucket := range in {
		bucket.finish()
		out[label] = *bucket
	}
	return out
}

// Labels returns the labels seen for a discipline in first-encounter order.
func (b Breakdown) Labels(d model.Discipline) []string {
	if d == model.Boulder {
		return append([]string(nil), b.boulderOrder...)
	}
	return append([]string(nil), b.routeOrder...)
}

// TierRows lays the breakdown out along tiers. Each tier gets a row even
// when empty. Labels not covered by any tier follow as extra rows in
// first-encounter order, routes before boulders.
func (b Breakdown) TierRows(tiers []bonus.Tier) []TierRow {
	rows := make([]TierRow, 0, len(tiers))
	covered := map[string]bool{}
	for _, t := range tiers {
		rows = append(rows, TierRow{
			Tier:         t.Name,
			RouteLabel:   t.RouteLabel,
			Route:        b.Route[t.RouteLabel],
			BoulderLabel: t.BoulderLabel,
			Boulder:      b.Boulder[t.BoulderLabel],
		})
		covered[t.RouteLabel] = true
		covered[t.BoulderLabel] = true
	}
	for _, label := range b.routeOrder {
		if !covered[label] {
			rows = append(rows, TierRow{Tier: label, RouteLabel: label, Route: b.Route[label]})
		}
	}
	for _, label := range b.boulderOrder {
		if !covered[label] {
			rows = append(rows, TierRow{Tier: label, BoulderLabel: label, Boulder: b.Boulder[label]})
		}
	}
	return rows
}

package aggregate

import (
	"sort"

	"github.com/okian/cadenas/internal/domain/model"
)

// AthleteDetail summarises one athlete's climbs.
type AthleteDetail struct {
	Athlete     string              `json:"athlete"`
	TotalPoints int                 `json:"total_points"`
	TotalClimbs int                 `json:"total_climbs"`
	BonusCounts map[string]int      `json:"bonus_counts"`
	Climbs      []model.ClimbRecord `json:"climbs"`

	labelOrder []string
}

// LabelCount is one entry of an athlete's bonus distribution.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DetailForAthlete collects the records of one athlete. An athlete with no
// records yields an empty detail, not an error.
func DetailForAthlete(records []model.ClimbRecord, athlete string) AthleteDetail {
	d := AthleteDetail{
		Athlete:     athlete,
		BonusCounts: map[string]int{},
		Climbs:      []model.ClimbRecord{},
	}
	var sum float64
	for _, r := range records {
		if r.Athlete != athlete {
			continue
		}
		d.Climbs = append(d.Climbs, r)
		sum += r.Points
		if _, seen := d.BonusCounts[r.BonusLabel]; !seen {
			d.labelOrder = append(d.labelOrder, r.BonusLabel)
		}
		d.BonusCounts[r.BonusLabel]++
	}
	d.TotalClimbs = len(d.Climbs)
	d.TotalPoints = model.RoundPoints(sum)
	return d
}

// Empty reports whether the athlete has no records.
func (d AthleteDetail) Empty() bool { return d.TotalClimbs == 0 }

// AveragePoints is the rounded total points per climb, or 0 without climbs.
func (d AthleteDetail) AveragePoints() int {
	if d.TotalClimbs == 0 {
		return 0
	}
	return model.RoundPoints(float64(d.TotalPoints) / float64(d.TotalClimbs))
}

// RankedBonusCounts lists bonus counts highest first, ties in the order
// the labels first appear in the athlete's climbs.
func (d AthleteDetail) RankedBonusCounts() []LabelCount {
	out := make([]LabelCount, 0, len(d.labelOrder))
	for _, label := range d.labelOrder {
		out = append(out, LabelCount{Label: label, Count: d.BonusCounts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

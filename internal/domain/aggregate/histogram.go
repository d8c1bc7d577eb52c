package aggregate

import (
	"sort"

	"github.com/okian/cadenas/internal/domain/model"
)

// unknownGrade stands in for an empty grade.
const unknownGrade = "Unknown"

// GradeHistogramEntry counts climbs at one grade.
type GradeHistogramEntry struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
}

// GradeHistogram counts climbs with the given bonus label per grade, most
// common first. Pass an athlete's climbs to get the athlete × label slice.
func GradeHistogram(climbs []model.ClimbRecord, bonusLabel string) []GradeHistogramEntry {
	out := make([]GradeHistogramEntry, 0)
	index := make(map[string]int)
	for _, r := range climbs {
		if r.BonusLabel != bonusLabel {
			continue
		}
		grade := r.Grade
		if grade == "" {
			grade = unknownGrade
		}
		i, ok := index[grade]
		if !ok {
			i = len(out)
			index[grade] = i
			out = append(out, GradeHistogramEntry{Grade: grade})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

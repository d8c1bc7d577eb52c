package model

import "math"

// RoundPoints rounds a point total to the nearest integer with halves going
// towards positive infinity, so 2.5 becomes 3 and -2.5 becomes -2.
//
// Values beyond the int range saturate at math.MaxInt or math.MinInt.
//
// Totals must be summed first and rounded once; rounding individual
// contributions drifts.
func RoundPoints(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	r := math.Floor(x + 0.5)
	switch {
	case r >= float64(math.MaxInt):
		return math.MaxInt
	case r < float64(math.MinInt):
		return math.MinInt
	}
	return int(r)
}

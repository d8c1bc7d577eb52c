package aggregate

import (
	"sort"

	"github.com/okian/cadenas/internal/domain/model"
)

// Recency windows used by the dashboard views.
const (
	DefaultRecentLimit = 10 // activity feed
	SliceRecentLimit   = 20 // drill-down recent logs
	AthleteRecentLimit = 15 // athlete recent climbs
)

// Recent returns records newest first, keeping at most limit of them. A
// limit of zero or less keeps everything. Records whose date did not parse
// sort as the oldest; equal dates keep input order.
func Recent(records []model.ClimbRecord, limit int) []model.ClimbRecord {
	out := make([]model.ClimbRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LoggedAt.After(out[j].LoggedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

package aggregate

import (
	"sort"

	"github.com/okian/cadenas/internal/domain/model"
)

// AthleteAggregate is one leaderboard row.
type AthleteAggregate struct {
	Athlete      string `json:"athlete"`
	TotalPoints  int    `json:"total_points"`
	TotalClimbs  int    `json:"total_climbs"`
	RouteCount   int    `json:"route_count"`
	BoulderCount int    `json:"boulder_count"`
}

type athleteAcc struct {
	row AthleteAggregate
	sum float64
}

// Leaderboard groups records by athlete and ranks them by total points,
// highest first. Athletes are grouped by exact name.
func Leaderboard(records []model.ClimbRecord) []AthleteAggregate {
	accs := make([]*athleteAcc, 0)
	index := make(map[string]int)

	for _, r := range records {
		i, ok := index[r.Athlete]
		if !ok {
			i = len(accs)
			index[r.Athlete] = i
			accs = append(accs, &athleteAcc{row: AthleteAggregate{Athlete: r.Athlete}})
		}
		acc := accs[i]
		acc.sum += r.Points
		acc.row.TotalClimbs++
		if r.Discipline == model.Boulder {
			acc.row.BoulderCount++
		} else {
			acc.row.RouteCount++
		}
	}

	out := make([]AthleteAggregate, len(accs))
	for i, acc := range accs {
		acc.row.TotalPoints = model.RoundPoints(acc.sum)
		out[i] = acc.row
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPoints > out[j].TotalPoints
	})
	return out
}

// Athletes returns athlete names in leaderboard order.
func Athletes(records []model.ClimbRecord) []string {
	rows := Leaderboard(records)
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Athlete
	}
	return names
}

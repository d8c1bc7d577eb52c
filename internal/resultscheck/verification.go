package resultscheck

import (
	"fmt"

	"github.com/okian/cadenas/internal/domain/types"
)

// verifyLeaderboard checks positional ranks, descending totals and the
// discipline split of every row.
func verifyLeaderboard(rows []types.LeaderboardEntry) []string {
	var problems []string
	for i, row := range rows {
		if row.Rank != i+1 {
			problems = append(problems, fmt.Sprintf("leaderboard row %d has rank %d", i, row.Rank))
		}
		if i > 0 && row.TotalPoints > rows[i-1].TotalPoints {
			problems = append(problems, fmt.Sprintf("leaderboard not sorted: %q (%d) above %q (%d)",
				rows[i-1].Athlete, rows[i-1].TotalPoints, row.Athlete, row.TotalPoints))
		}
		if row.RouteCount+row.BoulderCount != row.TotalClimbs {
			problems = append(problems, fmt.Sprintf("%q: route %d + boulder %d != total %d",
				row.Athlete, row.RouteCount, row.BoulderCount, row.TotalClimbs))
		}
	}
	return problems
}

// verifyAthleteList checks the athlete selector follows leaderboard order.
func verifyAthleteList(names []string, rows []types.LeaderboardEntry) []string {
	if len(names) != len(rows) {
		return []string{fmt.Sprintf("athlete list has %d names, leaderboard %d rows", len(names), len(rows))}
	}
	var problems []string
	for i := range names {
		if names[i] != rows[i].Athlete {
			problems = append(problems, fmt.Sprintf("athlete list position %d is %q, leaderboard has %q", i, names[i], rows[i].Athlete))
		}
	}
	return problems
}

// verifyBonusTotals checks the breakdown counts every climb once.
func verifyBonusTotals(b types.BonusResponse, rows []types.LeaderboardEntry) []string {
	var route, boulder int
	for _, row := range rows {
		route += row.RouteCount
		boulder += row.BoulderCount
	}
	var problems []string
	if b.Totals.Route.Count != route {
		problems = append(problems, fmt.Sprintf("bonus route total %d != leaderboard route climbs %d", b.Totals.Route.Count, route))
	}
	if b.Totals.Boulder.Count != boulder {
		problems = append(problems, fmt.Sprintf("bonus boulder total %d != leaderboard boulder climbs %d", b.Totals.Boulder.Count, boulder))
	}
	var labelled int
	for _, bucket := range b.Route {
		labelled += bucket.Count
	}
	for _, bucket := range b.Boulder {
		labelled += bucket.Count
	}
	if labelled != route+boulder {
		problems = append(problems, fmt.Sprintf("bonus labels count %d climbs, leaderboard %d", labelled, route+boulder))
	}
	return problems
}

// verifyAthleteDetails checks each athlete detail against its leaderboard row.
func verifyAthleteDetails(details []types.AthleteResponse, rows []types.LeaderboardEntry) []string {
	byName := make(map[string]types.LeaderboardEntry, len(rows))
	for _, row := range rows {
		byName[row.Athlete] = row
	}
	var problems []string
	for _, d := range details {
		row, ok := byName[d.Athlete]
		if !ok {
			problems = append(problems, fmt.Sprintf("detail for %q has no leaderboard row", d.Athlete))
			continue
		}
		if d.TotalClimbs != row.TotalClimbs || d.TotalPoints != row.TotalPoints {
			problems = append(problems, fmt.Sprintf("%q: detail %d climbs/%d points, leaderboard %d/%d",
				d.Athlete, d.TotalClimbs, d.TotalPoints, row.TotalClimbs, row.TotalPoints))
		}
		var counted int
		for _, lc := range d.BonusCounts {
			counted += lc.Count
		}
		if counted != d.TotalClimbs {
			problems = append(problems, fmt.Sprintf("%q: bonus counts sum %d != %d climbs", d.Athlete, counted, d.TotalClimbs))
		}
	}
	return problems
}

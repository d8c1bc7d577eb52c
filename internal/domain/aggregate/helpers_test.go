package aggregate_test

import (
	"github.com/okian/cadenas/internal/domain/bonus"
	"github.com/okian/cadenas/internal/domain/model"
	"github.com/okian/cadenas/internal/domain/normalize"
)

var normalizer = normalize.New(bonus.MustNew())

// climb describes the fields of a raw row that tests care about.
type climb struct {
	athlete string
	date    string
	route   string
	grade   string
	code    string
	points  string
}

func records(climbs ...climb) []model.ClimbRecord {
	rows := make([][]string, 0, len(climbs))
	for _, c := range climbs {
		r := make([]string, 15)
		r[normalize.ColAthlete] = c.athlete
		r[normalize.ColDate] = c.date
		r[normalize.ColRouteName] = c.route
		r[normalize.ColGrade] = c.grade
		r[normalize.ColBonusCode] = c.code
		r[normalize.ColPoints] = c.points
		rows = append(rows, r)
	}
	out, _ := normalizer.NormalizeAll(rows)
	return out
}

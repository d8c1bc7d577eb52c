package normalize_test

import (
	"testing"
	"time"

	"github.com/okian/cadenas/internal/domain/bonus"
	"github.com/okian/cadenas/internal/domain/model"
	"github.com/okian/cadenas/internal/domain/normalize"
	. "github.com/smartystreets/goconvey/convey"
)

// row builds a 15-column raw row from the used fields.
func row(athlete, date, route, crag, grade, code, points string) []string {
	r := make([]string, 15)
	r[normalize.ColAthlete] = athlete
	r[normalize.ColDate] = date
	r[normalize.ColRouteName] = route
	r[normalize.ColCrag] = crag
	r[normalize.ColGrade] = grade
	r[normalize.ColBonusCode] = code
	r[normalize.ColPoints] = points
	return r
}

func TestNormalizer_Normalize(t *testing.T) {
	Convey("Given a normalizer with the built-in classifier", t, func() {
		n := normalize.New(bonus.MustNew())

		Convey("When the row is complete", func() {
			rec := n.Normalize(row("Ana", "2024-03-05", "Diedro", "Pedra Grande", "6a", "FlashVia", "10.5"))

			Convey("Then every field is mapped from its column", func() {
				So(rec.Athlete, ShouldEqual, "Ana")
				So(rec.Date, ShouldEqual, "2024-03-05")
				So(rec.RouteName, ShouldEqual, "Diedro")
				So(rec.Crag, ShouldEqual, "Pedra Grande")
				So(rec.Grade, ShouldEqual, "6a")
				So(rec.BonusCode, ShouldEqual, "FlashVia")
				So(rec.BonusLabel, ShouldEqual, "Via Flash")
				So(rec.Discipline, ShouldEqual, model.Route)
				So(rec.Points, ShouldEqual, 10.5)
				So(rec.LoggedAt, ShouldEqual, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
			})
		})

		Convey("When the row is empty", func() {
			rec := n.Normalize(nil)

			Convey("Then a maximally empty route record is produced", func() {
				So(rec.Athlete, ShouldEqual, "")
				So(rec.BonusCode, ShouldEqual, "")
				So(rec.BonusLabel, ShouldEqual, "")
				So(rec.Discipline, ShouldEqual, model.Route)
				So(rec.Points, ShouldEqual, 0.0)
				So(rec.LoggedAt.IsZero(), ShouldBeTrue)
			})
		})

		Convey("When the row is short and stops before the points column", func() {
			rec := n.Normalize([]string{"Ben", "", "", "", "", "2024-01-01", "Teto", "", "7a", "Pula1Boulder"})

			Convey("Then points default to zero and present columns are kept", func() {
				So(rec.Athlete, ShouldEqual, "Ben")
				So(rec.Grade, ShouldEqual, "7a")
				So(rec.BonusLabel, ShouldEqual, "Boulder Quebra de Grau Maximo")
				So(rec.Discipline, ShouldEqual, model.Boulder)
				So(rec.Points, ShouldEqual, 0.0)
			})
		})

		Convey("When points are negative", func() {
			rec := n.Normalize(row("Ana", "", "", "", "", "FlashVia", "-3"))

			Convey("Then they pass through unchanged", func() {
				So(rec.Points, ShouldEqual, -3.0)
			})
		})

		Convey("When points are not a number", func() {
			rec := n.Normalize(row("Ana", "", "", "", "", "FlashVia", "n/a"))

			Convey("Then they normalize to zero", func() {
				So(rec.Points, ShouldEqual, 0.0)
			})
		})

		Convey("When the date is not a date", func() {
			rec := n.Normalize(row("Ana", "yesterday", "", "", "", "", ""))

			Convey("Then the raw text is kept and the parsed time is zero", func() {
				So(rec.Date, ShouldEqual, "yesterday")
				So(rec.LoggedAt.IsZero(), ShouldBeTrue)
			})
		})
	})
}

func TestNormalizer_NormalizeAll(t *testing.T) {
	Convey("Given a batch with good and malformed rows", t, func() {
		n := normalize.New(bonus.MustNew())
		rows := [][]string{
			row("Ana", "2024-03-05", "", "", "", "FlashVia", "10"),
			row("", "bad", "", "", "", "Weird", "x"),
			{},
		}

		records, stats := n.NormalizeAll(rows)

		Convey("Then no row is dropped and order is kept", func() {
			So(len(records), ShouldEqual, 3)
			So(records[0].Athlete, ShouldEqual, "Ana")
			So(records[1].BonusLabel, ShouldEqual, "Weird")
		})

		Convey("Then data-quality findings are counted", func() {
			So(stats.Rows, ShouldEqual, 3)
			So(stats.MissingAthlete, ShouldEqual, 2)
			So(stats.UnknownBonusCode, ShouldEqual, 1)
			So(stats.UnparsableDate, ShouldEqual, 2)
			So(stats.UnparsablePoints, ShouldEqual, 2)
		})
	})
}

func TestParsePoints(t *testing.T) {
	Convey("Given raw point cells", t, func() {
		cases := []struct {
			in   string
			want float64
			ok   bool
		}{
			{"10", 10, true},
			{"5.6", 5.6, true},
			{"  7.25", 7.25, true},
			{"12 pts", 12, true},
			{"5,6", 5, true},
			{".5", 0.5, true},
			{"-2.5", -2.5, true},
			{"1e2", 100, true},
			{"3e", 3, true},
			{"", 0, false},
			{"abc", 0, false},
			{"-", 0, false},
			{".", 0, false},
		}

		Convey("Then the leading number is read or zero is returned", func() {
			for _, c := range cases {
				got, ok := normalize.ParsePoints(c.in)
				So(got, ShouldEqual, c.want)
				So(ok, ShouldEqual, c.ok)
			}
		})
	})
}

func TestNormalizer_ParseDate(t *testing.T) {
	Convey("Given the default layouts", t, func() {
		n := normalize.New(bonus.MustNew())

		Convey("Then common sheet formats parse to the same day", func() {
			want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
			So(n.ParseDate("2024-03-05"), ShouldEqual, want)
			So(n.ParseDate("3/5/2024"), ShouldEqual, want)
			So(n.ParseDate("03/05/2024"), ShouldEqual, want)
			So(n.ParseDate("Mar 5, 2024"), ShouldEqual, want)
			So(n.ParseDate(" 2024-03-05 "), ShouldEqual, want)
		})

		Convey("Then garbage parses to the zero time", func() {
			So(n.ParseDate("not a date").IsZero(), ShouldBeTrue)
			So(n.ParseDate("").IsZero(), ShouldBeTrue)
		})
	})

	Convey("Given custom layouts", t, func() {
		n := normalize.New(bonus.MustNew(), normalize.WithDateLayouts([]string{"02/01/2006"}))

		Convey("Then day-first dates are read day-first", func() {
			So(n.ParseDate("05/03/2024"), ShouldEqual, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
		})

		Convey("Then formats outside the list are rejected", func() {
			So(n.ParseDate("2024-03-05").IsZero(), ShouldBeTrue)
		})
	})
}

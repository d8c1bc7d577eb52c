package aggregate_test

import (
	"testing"

	"github.com/okian/cadenas/internal/domain/aggregate"
	"github.com/okian/cadenas/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLeaderboard(t *testing.T) {
	Convey("Given Ana with two route flashes and Ben with a boulder flash", t, func() {
		recs := records(
			climb{athlete: "Ana", code: "FlashVia", points: "10"},
			climb{athlete: "Ana", code: "FlashVia", points: "5.6"},
			climb{athlete: "Ben", code: "FlashBoulder", points: "20"},
		)

		Convey("When building the leaderboard", func() {
			board := aggregate.Leaderboard(recs)

			Convey("Then Ben leads and Ana's total is rounded once after summing", func() {
				So(board, ShouldResemble, []aggregate.AthleteAggregate{
					{Athlete: "Ben", TotalPoints: 20, TotalClimbs: 1, RouteCount: 0, BoulderCount: 1},
					{Athlete: "Ana", TotalPoints: 16, TotalClimbs: 2, RouteCount: 2, BoulderCount: 0},
				})
			})

			Convey("And repeated calls give identical output", func() {
				So(aggregate.Leaderboard(recs), ShouldResemble, board)
			})
		})
	})

	Convey("Given athletes tied on points", t, func() {
		recs := records(
			climb{athlete: "Caio", code: "TrabVia", points: "10"},
			climb{athlete: "Dora", code: "TrabVia", points: "30"},
			climb{athlete: "Ana", code: "TrabVia", points: "10"},
			climb{athlete: "Ben", code: "TrabVia", points: "9.6"},
		)

		Convey("When building the leaderboard", func() {
			board := aggregate.Leaderboard(recs)

			Convey("Then ties keep first-encounter order, rounding included", func() {
				So(board[0].Athlete, ShouldEqual, "Dora")
				So(board[1].Athlete, ShouldEqual, "Caio")
				So(board[2].Athlete, ShouldEqual, "Ana")
				So(board[3].Athlete, ShouldEqual, "Ben")
				So(board[3].TotalPoints, ShouldEqual, 10)
			})
		})
	})

	Convey("Given names that differ only by case or whitespace", t, func() {
		recs := records(
			climb{athlete: "Ana", code: "FlashVia", points: "1"},
			climb{athlete: "ana", code: "FlashVia", points: "1"},
			climb{athlete: "Ana ", code: "FlashVia", points: "1"},
		)

		Convey("Then each spelling is its own group", func() {
			So(len(aggregate.Leaderboard(recs)), ShouldEqual, 3)
		})
	})

	Convey("Given fractional points crafted to expose rounding order", t, func() {
		recs := records(
			climb{athlete: "Ana", code: "FlashVia", points: "0.4"},
			climb{athlete: "Ana", code: "FlashVia", points: "0.4"},
			climb{athlete: "Ana", code: "FlashVia", points: "0.4"},
		)

		Convey("Then summing then rounding differs from rounding each contribution", func() {
			var sum float64
			perClimb := 0
			for _, r := range recs {
				sum += r.Points
				perClimb += model.RoundPoints(r.Points)
			}
			sumThenRound := model.RoundPoints(sum)
			So(sumThenRound, ShouldEqual, 1)
			So(perClimb, ShouldEqual, 0)

			Convey("And the leaderboard uses sum then round", func() {
				So(aggregate.Leaderboard(recs)[0].TotalPoints, ShouldEqual, sumThenRound)
			})
		})
	})

	Convey("Given a mix of disciplines", t, func() {
		recs := records(
			climb{athlete: "Ana", code: "FlashVia"},
			climb{athlete: "Ana", code: "FABolder"},
			climb{athlete: "Ana", code: ""},
			climb{athlete: "Ben", code: "OddBoulder"},
			climb{athlete: "Ben", code: "Pula2Via"},
		)

		Convey("Then route and boulder counts add up to total climbs", func() {
			for _, row := range aggregate.Leaderboard(recs) {
				So(row.RouteCount+row.BoulderCount, ShouldEqual, row.TotalClimbs)
			}
		})
	})

	Convey("Given negative points", t, func() {
		recs := records(
			climb{athlete: "Ana", code: "FlashVia", points: "-5"},
			climb{athlete: "Ben", code: "FlashVia", points: "1"},
		)

		Convey("Then they count towards the total unchanged", func() {
			board := aggregate.Leaderboard(recs)
			So(board[0].Athlete, ShouldEqual, "Ben")
			So(board[1].TotalPoints, ShouldEqual, -5)
		})
	})

	Convey("Given no records", t, func() {
		Convey("Then the leaderboard is empty", func() {
			So(aggregate.Leaderboard(nil), ShouldBeEmpty)
			So(aggregate.Athletes(nil), ShouldBeEmpty)
		})
	})
}

func TestAthletes(t *testing.T) {
	Convey("Given records for three athletes", t, func() {
		recs := records(
			climb{athlete: "Ana", points: "1"},
			climb{athlete: "Ben", points: "5"},
			climb{athlete: "Caio", points: "3"},
		)

		Convey("Then names come back in leaderboard order", func() {
			So(aggregate.Athletes(recs), ShouldResemble, []string{"Ben", "Caio", "Ana"})
		})
	})
}

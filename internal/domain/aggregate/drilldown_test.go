package aggregate_test

import (
	"testing"

	"github.com/okian/cadenas/internal/domain/aggregate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDrillDown(t *testing.T) {
	Convey("Given flash logs from several athletes", t, func() {
		recs := records(
			climb{athlete: "Ana", route: "A1", code: "FlashVia", points: "10.4"},
			climb{athlete: "Ben", route: "B1", code: "FlashVia", points: "3"},
			climb{athlete: "Ana", route: "A2", code: "FlashVia", points: "5.3"},
			climb{athlete: "Caio", route: "C1", code: "FlashVia", points: "8"},
			climb{athlete: "Ben", route: "B2", code: "FlashBoulder", points: "9"},
			climb{athlete: "Dora", route: "D1", code: "TrabBoulder", points: "4"},
		)

		Convey("When drilling into a label", func() {
			rows := aggregate.DrillDown(recs, aggregate.ByLabel("Via Flash"))

			Convey("Then athletes are ranked by log count with ties in encounter order", func() {
				So(len(rows), ShouldEqual, 3)
				So(rows[0].Athlete, ShouldEqual, "Ana")
				So(rows[0].Count, ShouldEqual, 2)
				So(rows[0].TotalPoints, ShouldEqual, 16)
				So(rows[1].Athlete, ShouldEqual, "Ben")
				So(rows[2].Athlete, ShouldEqual, "Caio")
			})

			Convey("Then each row keeps its climbs in encounter order", func() {
				So(rows[0].Climbs[0].RouteName, ShouldEqual, "A1")
				So(rows[0].Climbs[1].RouteName, ShouldEqual, "A2")
			})
		})

		Convey("When drilling into all boulders", func() {
			rows := aggregate.DrillDown(recs, aggregate.AllBoulders())

			Convey("Then every boulder record is included regardless of label", func() {
				So(len(rows), ShouldEqual, 2)
				So(rows[0].Athlete, ShouldEqual, "Ben")
				So(rows[1].Athlete, ShouldEqual, "Dora")
			})
		})

		Convey("When drilling into all routes", func() {
			rows := aggregate.DrillDown(recs, aggregate.AllRoutes())

			Convey("Then only route records count", func() {
				So(rows[0].Athlete, ShouldEqual, "Ana")
				So(rows[1].Count, ShouldEqual, 1)
			})
		})

		Convey("When the label matches nothing", func() {
			rows := aggregate.DrillDown(recs, aggregate.ByLabel("Via FA"))

			Convey("Then the result is empty, not an error", func() {
				So(rows, ShouldNotBeNil)
				So(rows, ShouldBeEmpty)
			})
		})

		Convey("When filtering the same slice", func() {
			logs := aggregate.Filter(recs, aggregate.AllBoulders())

			Convey("Then records come back in input order", func() {
				So(len(logs), ShouldEqual, 2)
				So(logs[0].RouteName, ShouldEqual, "B2")
			})
		})
	})

	Convey("Given selectors", t, func() {
		Convey("Then they describe themselves", func() {
			So(aggregate.AllRoutes().String(), ShouldEqual, "all routes")
			So(aggregate.AllBoulders().String(), ShouldEqual, "all boulders")
			So(aggregate.ByLabel("Via FA").String(), ShouldEqual, "Via FA")
		})
	})
}

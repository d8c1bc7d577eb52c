package aggregate_test

import (
	"testing"

	"github.com/okian/cadenas/internal/domain/aggregate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGradeHistogram(t *testing.T) {
	Convey("Given an athlete's climbs", t, func() {
		recs := records(
			climb{athlete: "Ana", grade: "6a", code: "FlashVia"},
			climb{athlete: "Ana", grade: "6b", code: "FlashVia"},
			climb{athlete: "Ana", grade: "", code: "FlashVia"},
			climb{athlete: "Ana", grade: "6b", code: "FlashVia"},
			climb{athlete: "Ana", grade: "7a", code: "TrabVia"},
			climb{athlete: "Ana", grade: "", code: "FlashVia"},
		)
		climbs := aggregate.DetailForAthlete(recs, "Ana").Climbs

		Convey("When building the histogram for one label", func() {
			hist := aggregate.GradeHistogram(climbs, "Via Flash")

			Convey("Then grades are counted, empty ones as Unknown, ties in encounter order", func() {
				So(hist, ShouldResemble, []aggregate.GradeHistogramEntry{
					{Grade: "6b", Count: 2},
					{Grade: "Unknown", Count: 2},
					{Grade: "6a", Count: 1},
				})
			})
		})

		Convey("When the label has no climbs", func() {
			Convey("Then the histogram is empty", func() {
				So(aggregate.GradeHistogram(climbs, "Via FA"), ShouldBeEmpty)
			})
		})
	})
}

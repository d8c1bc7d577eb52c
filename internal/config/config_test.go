package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/cadenas/internal/config"
	"github.com/okian/cadenas/internal/domain/model"
	"github.com/okian/cadenas/internal/domain/normalize"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.SheetRange, convey.ShouldEqual, "cadenas1!A2:O")
			convey.So(cfg.RecentLimit, convey.ShouldEqual, 10)
			convey.So(cfg.SliceRecentLimit, convey.ShouldEqual, 20)
			convey.So(cfg.AthleteRecentLimit, convey.ShouldEqual, 15)
			convey.So(cfg.DateLayouts, convey.ShouldResemble, normalize.DefaultDateLayouts)
			convey.So(cfg.FetchTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, time.Minute)
		})

		convey.Convey("Then the defaults validate", func() {
			convey.So(config.Validate(cfg), convey.ShouldBeNil)
		})

		convey.Convey("When changing the default layouts", func() {
			cfg.DateLayouts[0] = "changed"

			convey.Convey("Then the package defaults are untouched", func() {
				convey.So(normalize.DefaultDateLayouts[0], convey.ShouldEqual, "2006-01-02")
			})
		})
	})
}

func TestConfig_BonusEntries(t *testing.T) {
	convey.Convey("Given configured extra bonus codes", t, func() {
		cfg := config.New()
		cfg.ExtraBonusCodes = []config.BonusCode{
			{Code: "ProjVia", Label: "Via Projeto", Discipline: "Route"},
			{Code: "ProjBoulder", Label: "Boulder Projeto", Discipline: "Boulder"},
		}

		convey.Convey("Then they convert to classifier entries", func() {
			entries := cfg.BonusEntries()
			convey.So(len(entries), convey.ShouldEqual, 2)
			convey.So(entries[0].Discipline, convey.ShouldEqual, model.Route)
			convey.So(entries[1].Discipline, convey.ShouldEqual, model.Boulder)
			convey.So(config.Validate(cfg), convey.ShouldBeNil)
		})

		convey.Convey("When a discipline is misspelled", func() {
			cfg.ExtraBonusCodes[0].Discipline = "Via"

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(config.Validate(cfg), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

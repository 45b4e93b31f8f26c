package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/scout/internal/config"
	"github.com/okian/scout/internal/domain/policy"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.CandidatesPath, convey.ShouldEqual, "general_shortlist.csv")
			convey.So(cfg.SquadPath, convey.ShouldEqual, "squad.csv")
			convey.So(cfg.OutputPath, convey.ShouldEqual, "sorted_transfer_targets.csv")
			convey.So(cfg.Strategy, convey.ShouldEqual, "statistical")
			convey.So(cfg.RoleColumns, convey.ShouldResemble, config.DefaultRoleColumns())
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DegenerateScore, convey.ShouldEqual, 1.0)
			convey.So(cfg.MaxShortlistLimit, convey.ShouldEqual, 100)
			convey.So(cfg.Serve, convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the strategy parses", func() {
			s, err := cfg.ParsedStrategy()
			convey.So(err, convey.ShouldBeNil)
			convey.So(s, convey.ShouldEqual, policy.StrategyStatistical)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given an invalid config", t, func() {
		cfg := config.New()
		cfg.Strategy = "random"
		cfg.WorkerCount = 0
		cfg.RoleColumns = nil
		cfg.LogLevel = "loud"
		cfg.DegenerateScore = 2

		err := cfg.Validate()

		convey.Convey("Then every problem is reported as ErrInvalidConfig", func() {
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "WorkerCount")
			convey.So(err.Error(), convey.ShouldContainSubstring, "RoleColumns")
			convey.So(err.Error(), convey.ShouldContainSubstring, "LogLevel")
			convey.So(err.Error(), convey.ShouldContainSubstring, "DegenerateScore")
			convey.So(err.Error(), convey.ShouldContainSubstring, "random")
		})

		convey.Convey("Then ParsedStrategy fails too", func() {
			_, err := cfg.ParsedStrategy()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given serve mode without an address", t, func() {
		cfg := config.New()
		cfg.Serve = true
		cfg.Addr = ""

		convey.Convey("Then validation fails", func() {
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

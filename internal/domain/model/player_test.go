package model_test

import (
	"math"
	"testing"

	model "github.com/okian/scout/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestCandidateBestAbility(t *testing.T) {
	convey.Convey("Given a candidate", t, func() {
		convey.Convey("When several role abilities are present", func() {
			c := model.Candidate{Name: "A", Abilities: map[string]float64{"afa": 12, "ifs": 15.5, "ama": 9}}

			convey.Convey("Then the best one is returned", func() {
				best, ok := c.BestAbility()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(best, convey.ShouldEqual, 15.5)
			})
		})

		convey.Convey("When no abilities are present", func() {
			c := model.Candidate{Name: "B"}

			convey.Convey("Then it reports no data instead of zero", func() {
				best, ok := c.BestAbility()
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(best, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When an ability is NaN", func() {
			c := model.Candidate{Abilities: map[string]float64{"afa": math.NaN(), "sks": 4}}

			convey.Convey("Then it is excluded from the max", func() {
				best, ok := c.BestAbility()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(best, convey.ShouldEqual, 4)
			})
		})
	})
}

func TestSquadMemberBestAbility(t *testing.T) {
	convey.Convey("Given a squad member with a single ability", t, func() {
		m := model.SquadMember{Name: "C", Abilities: map[string]float64{"bpdd": 14}}

		convey.Convey("Then that ability is the best one", func() {
			best, ok := m.BestAbility()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(best, convey.ShouldEqual, 14)
		})
	})
}

func TestParseCategory(t *testing.T) {
	convey.Convey("Given Player_Type labels", t, func() {
		cases := map[string]model.Category{
			"wonderkid":      model.CategoryWonderkid,
			"wonderkids":     model.CategoryWonderkid,
			" Starters ":     model.CategoryStarter,
			"starter":        model.CategoryStarter,
			"squad_players":  model.CategorySquadPlayer,
			"SQUAD_PLAYER":   model.CategorySquadPlayer,
			"":               model.CategoryUnknown,
			"backup_keepers": model.CategoryUnknown,
		}

		convey.Convey("Then each maps to the expected category", func() {
			for in, want := range cases {
				convey.So(model.ParseCategory(in), convey.ShouldEqual, want)
			}
		})

		convey.Convey("And the known categories exclude unknown", func() {
			convey.So(model.Categories(), convey.ShouldHaveLength, 3)
			convey.So(model.Categories(), convey.ShouldNotContain, model.CategoryUnknown)
		})
	})
}

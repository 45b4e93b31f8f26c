package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/scout/internal/adapters/dataset"
	service "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/policy"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(&bytes.Buffer{})); err != nil {
		panic(err)
	}
}

const candidatesCSV = `Name,Age,Position,Transfer Value,Player_Type,Price_Range,afa,ifs
Star,30,ST (C),€100M,starters,expensive,18,
Twin B,25,M (C),€50M,starters,mid,12,
Cheap Kid,18,ST (C),€10M,wonderkids,cheap,15,
Mid Pro,25,M (C),€50M,starters,mid,12,
Twin A,25,M (C),€50M,starters,mid,12,
`

const squadCSV = `Name,Position,afa,ifs
Keeper,GK,,11
Defender,D (C),9,
`

// flatParser prices every transfer value the same.
type flatParser float64

func (f flatParser) Parse(string) float64 { return float64(f) }

func writeFixtures(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	cands := filepath.Join(dir, "general_shortlist.csv")
	squad := filepath.Join(dir, "squad.csv")
	if err := os.WriteFile(cands, []byte(candidatesCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(squad, []byte(squadCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return cands, squad, filepath.Join(dir, "sorted_transfer_targets.csv")
}

func names(ranked []model.ScoredCandidate) []string {
	out := make([]string, len(ranked))
	for i, sc := range ranked {
		out[i] = sc.Name
	}
	return out
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()

	Convey("Given a manual-strategy service and fixture files", t, func() {
		cands, squad, out := writeFixtures(t)
		svc := service.New(
			service.WithStrategy(policy.StrategyManual),
			service.WithWorkerCount(3),
			service.WithOutputPath(out),
		)

		Convey("Before any run", func() {
			_, err := svc.Result()
			So(errors.Is(err, service.ErrNoResult), ShouldBeTrue)
			So(svc.GetStats()["completed"], ShouldBeFalse)
		})

		Convey("When the batch runs", func() {
			res, err := svc.Run(ctx, cands, squad)
			So(err, ShouldBeNil)

			Convey("Then candidates are ranked by score with name tie-breaks", func() {
				So(names(res.Ranked), ShouldResemble, []string{"Cheap Kid", "Mid Pro", "Twin A", "Twin B", "Star"})
				So(res.Ranked[0].Score, ShouldAlmostEqual, 0.915, 1e-9)
				So(res.Ranked[1].Score, ShouldAlmostEqual, 0.3*50.0/90.0+0.5*0.6+0.1*5.0/12.0+0.2, 1e-9)
				So(res.Ranked[1].Score, ShouldEqual, res.Ranked[3].Score)
				So(res.Ranked[4].Score, ShouldAlmostEqual, 0.65, 1e-9)
				for i, sc := range res.Ranked {
					So(sc.Rank, ShouldEqual, i+1)
				}
			})

			Convey("Then the policy and deficits come from the manual table", func() {
				So(res.Policy.Strategy, ShouldEqual, policy.StrategyManual)
				So(res.Deficits["GK"], ShouldEqual, 1)
				So(res.Deficits["D (C)"], ShouldEqual, 3)
				So(res.Deficits.Total(), ShouldEqual, 23)
				So(res.Ranked[0].FillsDeficit, ShouldBeTrue)
				So(res.RunID, ShouldNotBeEmpty)
			})

			Convey("Then the ranked CSV is written with a Score column", func() {
				f, err := os.Open(out)
				So(err, ShouldBeNil)
				defer f.Close()
				rows, err := csv.NewReader(f).ReadAll()
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 6)
				So(rows[0][len(rows[0])-1], ShouldEqual, "Score")
				So(rows[0][5], ShouldEqual, "Price_Range")
				So(rows[1][0], ShouldEqual, "Cheap Kid")
				So(rows[1][5], ShouldEqual, "cheap")
				So(rows[5][0], ShouldEqual, "Star")
			})

			Convey("Then reads are served from the published shortlist", func() {
				top, err := svc.TopN(ctx, 2)
				So(err, ShouldBeNil)
				So(top[0].Name, ShouldEqual, "Cheap Kid")
				So(top[1].Rank, ShouldEqual, 2)

				e, err := svc.Rank(ctx, "Star")
				So(err, ShouldBeNil)
				So(e.Rank, ShouldEqual, 5)

				So(svc.Policy().Strategy, ShouldEqual, policy.StrategyManual)
			})

			Convey("Then stats describe the run", func() {
				stats := svc.GetStats()
				So(stats["completed"], ShouldBeTrue)
				So(stats["runId"], ShouldEqual, res.RunID)
				So(stats["candidates"], ShouldEqual, 5)
				So(stats["squadSize"], ShouldEqual, 2)
				So(stats["strategy"], ShouldEqual, "manual")
			})

			Convey("And a second run over the same inputs is identical except for the run id", func() {
				again, err := svc.Run(ctx, cands, squad)
				So(err, ShouldBeNil)
				So(names(again.Ranked), ShouldResemble, names(res.Ranked))
				for i := range res.Ranked {
					So(again.Ranked[i].Score, ShouldEqual, res.Ranked[i].Score)
				}
				So(again.RunID, ShouldNotEqual, res.RunID)
			})
		})
	})

	Convey("Given a statistical-strategy service", t, func() {
		cands, squad, _ := writeFixtures(t)
		svc := service.New(service.WithWorkerCount(1))

		res, err := svc.Run(ctx, cands, squad)

		Convey("Then the policy is derived from the inputs", func() {
			So(err, ShouldBeNil)
			So(res.Policy.Strategy, ShouldEqual, policy.StrategyStatistical)
			So(res.Policy.Thresholds.SquadPlayer, ShouldEqual, 10)
			So(res.Policy.PositionRequirements, ShouldResemble, map[string]int{"ST (C)": 2, "M (C)": 2})
			So(res.Ranked, ShouldHaveLength, 5)
		})
	})

	Convey("Given overrides with a non-manual strategy", t, func() {
		cands, squad, _ := writeFixtures(t)
		ov, err := policy.ParseOverrides([]byte(`{"weights": {"price": 1}}`))
		So(err, ShouldBeNil)
		svc := service.New(service.WithStrategy(policy.StrategyHeuristic), service.WithOverrides(ov))

		_, err = svc.Run(ctx, cands, squad)

		Convey("Then the run fails before scoring", func() {
			So(errors.Is(err, policy.ErrInvalidConfiguration), ShouldBeTrue)
			_, rerr := svc.Result()
			So(errors.Is(rerr, service.ErrNoResult), ShouldBeTrue)
		})
	})

	Convey("Given a candidate file without a required column", t, func() {
		dir := t.TempDir()
		cands := filepath.Join(dir, "c.csv")
		So(os.WriteFile(cands, []byte("Name,Age\nA,20\n"), 0o600), ShouldBeNil)

		_, err := service.New().Run(ctx, cands, filepath.Join(dir, "s.csv"))

		So(errors.Is(err, dataset.ErrMissingColumn), ShouldBeTrue)
	})
}

func TestService_Evaluate(t *testing.T) {
	Convey("Given in-memory inputs", t, func() {
		svc := service.New(service.WithStrategy(policy.StrategyHeuristic))
		candidates := []model.Candidate{
			{Name: "Solo", Age: 21, TransferValue: "€5M", Abilities: map[string]float64{"afa": 10}},
		}

		Convey("When every candidate shares price and age", func() {
			res, err := svc.Evaluate(context.Background(), candidates, nil)

			Convey("Then the degenerate range scores deterministically", func() {
				So(err, ShouldBeNil)
				So(res.Ranked[0].Breakdown.Price, ShouldEqual, 1)
				So(res.Ranked[0].Breakdown.Age, ShouldEqual, 1)
				So(res.Ranked[0].Rank, ShouldEqual, 1)
			})
		})

		Convey("When the pool is empty", func() {
			res, err := svc.Evaluate(context.Background(), nil, nil)

			So(err, ShouldBeNil)
			So(res.Ranked, ShouldBeEmpty)
		})

		Convey("When the scorer prices with its own parser", func() {
			priced := service.New(
				service.WithStrategy(policy.StrategyStatistical),
				service.WithScorer(scoring.NewScorer(scoring.WithParser(flatParser(3e6)))),
			)
			pool := []model.Candidate{
				{Name: "A", Age: 20, TransferValue: "€90M", Positions: []string{"GK"}},
				{Name: "B", Age: 25, TransferValue: "garbage", Positions: []string{"GK"}},
			}

			res, err := priced.Evaluate(context.Background(), pool, nil)

			Convey("Then bounds, prices and policy bands share it", func() {
				So(err, ShouldBeNil)
				So(res.Bounds.MinPrice, ShouldEqual, 3e6)
				So(res.Bounds.MaxPrice, ShouldEqual, 3e6)
				So(res.Ranked[0].Price, ShouldEqual, 3e6)
				So(res.Policy.PriceBands[model.CategoryStarter].Expensive, ShouldEqual, 3e6)
			})
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := svc.Evaluate(ctx, candidates, nil)

			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

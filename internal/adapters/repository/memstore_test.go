package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func ranked(names ...string) []model.ScoredCandidate {
	out := make([]model.ScoredCandidate, len(names))
	for i, n := range names {
		out[i] = model.ScoredCandidate{
			Candidate: model.Candidate{Name: n},
			Score:     1 - float64(i)/10,
			Rank:      i + 1,
		}
	}
	return out
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := repository.NewMemoryStore()

		Convey("Then it reports nothing", func() {
			So(s.Count(ctx), ShouldEqual, 0)
			top, err := s.TopN(ctx, 5)
			So(err, ShouldBeNil)
			So(top, ShouldBeEmpty)
			_, err = s.Rank(ctx, "Anyone")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When a ranked batch is published", func() {
			So(s.Publish(ctx, ranked("Star", "Mid Pro", "Kid")), ShouldBeNil)

			Convey("Then TopN follows rank order and clamps n", func() {
				top, err := s.TopN(ctx, 2)
				So(err, ShouldBeNil)
				So(top[0].Name, ShouldEqual, "Star")
				So(top[1].Name, ShouldEqual, "Mid Pro")

				all, err := s.TopN(ctx, 50)
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 3)
			})

			Convey("Then Rank finds a record by name", func() {
				got, err := s.Rank(ctx, " Kid ")
				So(err, ShouldBeNil)
				So(got.Rank, ShouldEqual, 3)
			})

			Convey("Then names are case sensitive by default", func() {
				_, err := s.Rank(ctx, "kid")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("Then a non-positive limit is rejected", func() {
				_, err := s.TopN(ctx, 0)
				So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
			})

			Convey("Then callers cannot mutate the stored batch", func() {
				top, _ := s.TopN(ctx, 1)
				top[0].Name = "Mutated"
				again, _ := s.TopN(ctx, 1)
				So(again[0].Name, ShouldEqual, "Star")
			})

			Convey("And a second publish replaces the first", func() {
				So(s.Publish(ctx, ranked("Only")), ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, 1)
				_, err := s.Rank(ctx, "Star")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When an unranked batch is published", func() {
			batch := ranked("A", "B")
			batch[1].Rank = 5
			err := s.Publish(ctx, batch)

			Convey("Then it is rejected and the store is unchanged", func() {
				So(errors.Is(err, repository.ErrNotRanked), ShouldBeTrue)
				So(s.Count(ctx), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a case-insensitive store", t, func() {
		s := repository.NewMemoryStore(repository.WithCaseInsensitiveLookup())
		So(s.Publish(ctx, ranked("Pedri")), ShouldBeNil)

		got, err := s.Rank(ctx, "PEDRI")
		So(err, ShouldBeNil)
		So(got.Name, ShouldEqual, "Pedri")
	})

	Convey("Given concurrent readers during a publish", t, func() {
		s := repository.NewMemoryStore()
		names := make([]string, 100)
		for i := range names {
			names[i] = fmt.Sprintf("p%03d", i)
		}

		var wg sync.WaitGroup
		for r := 0; r < 8; r++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					top, err := s.TopN(ctx, 10)
					if err != nil || (len(top) != 0 && len(top) != 10) {
						panic("torn read")
					}
				}
			}()
		}
		So(s.Publish(ctx, ranked(names...)), ShouldBeNil)
		wg.Wait()

		So(s.Count(ctx), ShouldEqual, 100)
	})
}

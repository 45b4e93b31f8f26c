package worker_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/scout/internal/adapters/mq/queue"
	worker "github.com/okian/scout/internal/adapters/mq/worker"
	model "github.com/okian/scout/internal/domain/model"
	logging "github.com/okian/scout/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logging.Init(logging.WithWriter(&bytes.Buffer{})); err != nil {
		panic(err)
	}
}

func lengthScorer() worker.ScorerFunc {
	return func(c model.Candidate) model.ScoredCandidate {
		return model.ScoredCandidate{Candidate: c, Score: float64(len(c.Name))}
	}
}

func pool(n int) []model.Candidate {
	out := make([]model.Candidate, n)
	for i := range out {
		out[i] = model.Candidate{Name: fmt.Sprintf("player-%03d", i), Age: i}
	}
	return out
}

func TestPool_ScoreAll(t *testing.T) {
	convey.Convey("Given a pool of four workers", t, func() {
		p := worker.NewPool(4, lengthScorer())
		ctx := context.Background()

		convey.So(p.Size(), convey.ShouldEqual, 4)

		convey.Convey("When scoring a batch", func() {
			in := pool(250)
			out, err := p.ScoreAll(ctx, in)

			convey.Convey("Then every slot holds its own candidate", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldHaveLength, len(in))
				for i := range in {
					convey.So(out[i].Name, convey.ShouldEqual, in[i].Name)
					convey.So(out[i].Score, convey.ShouldEqual, float64(len(in[i].Name)))
				}
			})
		})

		convey.Convey("When scoring an empty batch", func() {
			out, err := p.ScoreAll(ctx, nil)

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldBeEmpty)
		})

		convey.Convey("When there are fewer candidates than workers", func() {
			out, err := p.ScoreAll(ctx, pool(2))

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldHaveLength, 2)
		})

		convey.Convey("When the context is cancelled before the pass", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := p.ScoreAll(cctx, pool(10))

			convey.Convey("Then the pass fails with ErrStopped", func() {
				convey.So(errors.Is(err, worker.ErrStopped), convey.ShouldBeTrue)
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a non-positive worker count", t, func() {
		p := worker.NewPool(0, lengthScorer())

		convey.Convey("Then it falls back to one worker per CPU", func() {
			convey.So(p.Size(), convey.ShouldBeGreaterThan, 0)
		})
	})

	convey.Convey("Given concurrent passes over one pool", t, func() {
		var calls atomic.Int64
		p := worker.NewPool(3, worker.ScorerFunc(func(c model.Candidate) model.ScoredCandidate {
			calls.Add(1)
			return model.ScoredCandidate{Candidate: c}
		}))

		done := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				_, err := p.ScoreAll(context.Background(), pool(50))
				done <- err
			}()
		}

		convey.So(<-done, convey.ShouldBeNil)
		convey.So(<-done, convey.ShouldBeNil)
		convey.So(calls.Load(), convey.ShouldEqual, 100)
	})
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker on a queue", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		slots := make(worker.Slots, 2)
		w := worker.NewInMemoryWorker(q, lengthScorer(), slots, worker.WithName("test"))
		ctx := context.Background()

		go w.Run(ctx)

		convey.Convey("When the queue is drained and closed", func() {
			q.Enqueue(ctx, queue.Job{Index: 1, Candidate: model.Candidate{Name: "abc"}})
			_ = q.Close()
			<-w.Done()

			convey.Convey("Then the result landed in its slot", func() {
				convey.So(slots[1].Score, convey.ShouldEqual, 3)
				convey.So(slots[0].Name, convey.ShouldBeEmpty)
				convey.So(w.Processed(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When it is shut down while idle", func() {
			sctx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()

			convey.Convey("Then it stops cleanly", func() {
				convey.So(w.Shutdown(sctx), convey.ShouldBeNil)
				convey.So(w.Processed(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When it is shut down twice", func() {
			sctx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()

			convey.Convey("Then the second call returns without panicking", func() {
				convey.So(w.Shutdown(sctx), convey.ShouldBeNil)
				convey.So(func() { _ = w.Shutdown(sctx) }, convey.ShouldNotPanic)
				convey.So(w.Shutdown(sctx), convey.ShouldBeNil)
			})
		})
	})
}

// Package worker runs the per-candidate scoring pass on a bounded pool.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/scout/internal/adapters/mq/queue"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// ErrStopped is returned when a pass ends before every job was scored.
var ErrStopped = errors.New("scoring pass stopped")

// Scorer scores one candidate against the batch-wide inputs it was built with.
type Scorer interface {
	Score(c model.Candidate) model.ScoredCandidate
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(c model.Candidate) model.ScoredCandidate

// Score calls f(c).
func (f ScorerFunc) Score(c model.Candidate) model.ScoredCandidate { return f(c) }

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Sink receives results. Each index is written exactly once.
type Sink interface {
	Put(index int, sc model.ScoredCandidate)
}

// Slots is a Sink backed by a pre-sized slice. Workers write disjoint
// indexes, so no locking is needed.
type Slots []model.ScoredCandidate

// Put stores sc at index.
func (s Slots) Put(index int, sc model.ScoredCandidate) { s[index] = sc }

// Worker processes jobs until the queue drains or it is stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue is closed.
	Run(ctx context.Context)

	// Shutdown stops the worker after its current job.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker over a Queue.
type InMemoryWorker struct {
	queue  Queue
	scorer Scorer
	sink   Sink
	name   string

	processed int

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, scorer Scorer, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		scorer:   scorer,
		sink:     sink,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				w.logger.Debug(ctx, "queue drained", logger.Int("processed", w.processed))
				return
			}
			w.process(job)
		}
	}
}

// Shutdown stops the worker. Repeated calls wait on the same stop.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

// Processed returns how many jobs the worker finished. Read it after Done.
func (w *InMemoryWorker) Processed() int { return w.processed }

func (w *InMemoryWorker) process(job queue.Job) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	start := time.Now()
	sc := w.scorer.Score(job.Candidate)
	metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000)

	w.sink.Put(job.Index, sc)
	w.processed++
}

// Pool fans one scoring pass out over a fixed number of workers.
type Pool struct {
	workerCount int
	scorer      Scorer

	logger logger.Logger
}

// NewPool creates a new worker pool. A non-positive count uses NumCPU.
func NewPool(workerCount int, scorer Scorer) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	return &Pool{
		workerCount: workerCount,
		scorer:      scorer,
		logger:      logger.Get().Named("worker-pool"),
	}
}

// Size returns the number of workers a pass uses.
func (p *Pool) Size() int { return p.workerCount }

// ScoreAll scores every candidate and returns the results in input order.
// Cancelling ctx stops dispatch; the pass then fails with ErrStopped.
func (p *Pool) ScoreAll(ctx context.Context, candidates []model.Candidate) ([]model.ScoredCandidate, error) {
	results := make(Slots, len(candidates))
	if len(candidates) == 0 {
		return results, nil
	}

	n := min(p.workerCount, len(candidates))
	metrics.SetWorkerCount(n)

	q := queue.NewInMemoryQueue(queue.WithCapacity(len(candidates)))
	workers := make([]*InMemoryWorker, n)
	for i := range workers {
		workers[i] = NewInMemoryWorker(q, p.scorer, results, WithName("worker-"+strconv.Itoa(i)))
		go workers[i].Run(ctx)
	}

	dispatched := 0
	for i, c := range candidates {
		if !q.Enqueue(ctx, queue.Job{Index: i, Candidate: c}) {
			break
		}
		dispatched++
	}
	_ = q.Close()

	processed := 0
	for _, w := range workers {
		<-w.Done()
		processed += w.Processed()
	}

	if processed != len(candidates) {
		p.logger.Warn(ctx, "scoring pass incomplete",
			logger.Int("dispatched", dispatched),
			logger.Int("processed", processed),
			logger.Int("candidates", len(candidates)))
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStopped, err)
		}
		return nil, ErrStopped
	}

	p.logger.Debug(ctx, "scoring pass complete", logger.Int("workers", n), logger.Int("candidates", processed))
	return results, nil
}

// Package service orchestrates one batch evaluation and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scout/internal/adapters/dataset"
	workerpool "github.com/okian/scout/internal/adapters/mq/worker"
	"github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/deficit"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/policy"
	"github.com/okian/scout/internal/domain/ranking"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/internal/domain/types"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Result is everything one batch run produced. It is never mutated after
// the run completes.
type Result struct {
	RunID     string
	Policy    policy.ScoringPolicy
	Deficits  deficit.PositionDeficit
	Bounds    scoring.Bounds
	Ranked    []model.ScoredCandidate
	Header    []string
	SquadSize int
	StartedAt time.Time
	Duration  time.Duration
}

// Service runs batch evaluations and serves the latest result.
type Service struct {
	mu sync.RWMutex

	// Core components
	reader *dataset.Reader
	scorer *scoring.Scorer
	store  repository.Store

	// Configuration
	strategy    policy.Strategy
	overrides   *policy.Overrides
	workerCount int
	outputPath  string

	// State
	last *Result

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStrategy sets the policy strategy.
func WithStrategy(s policy.Strategy) Option {
	return func(svc *Service) {
		svc.strategy = s
	}
}

// WithOverrides sets the manual policy overrides.
func WithOverrides(ov *policy.Overrides) Option {
	return func(svc *Service) {
		svc.overrides = ov
	}
}

// WithWorkerCount sets the number of scoring workers.
func WithWorkerCount(count int) Option {
	return func(svc *Service) {
		if count > 0 {
			svc.workerCount = count
		}
	}
}

// WithOutputPath sets the ranked CSV destination. Empty disables the file.
func WithOutputPath(path string) Option {
	return func(svc *Service) {
		svc.outputPath = path
	}
}

// WithReader sets the dataset reader.
func WithReader(r *dataset.Reader) Option {
	return func(svc *Service) {
		if r != nil {
			svc.reader = r
		}
	}
}

// WithScorer sets the player scorer.
func WithScorer(s *scoring.Scorer) Option {
	return func(svc *Service) {
		if s != nil {
			svc.scorer = s
		}
	}
}

// WithStore sets the shortlist store.
func WithStore(st repository.Store) Option {
	return func(svc *Service) {
		if st != nil {
			svc.store = st
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		strategy:    policy.StrategyStatistical,
		workerCount: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.reader == nil {
		s.reader = dataset.NewReader()
	}
	if s.scorer == nil {
		s.scorer = scoring.NewScorer()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}

	return s
}

// Evaluate resolves the policy, scores every candidate and ranks them. It
// does not publish or write anything.
func (s *Service) Evaluate(ctx context.Context, candidates []model.Candidate, squad []model.SquadMember) (*Result, error) {
	start := time.Now()

	ropts := []policy.Option{policy.WithParser(s.scorer.Parser())}
	if s.overrides != nil {
		ropts = append(ropts, policy.WithOverrides(s.overrides))
	}
	p, err := policy.Resolve(ctx, s.strategy, candidates, squad, ropts...)
	if err != nil {
		return nil, err
	}
	metrics.RecordPolicyResolution(s.strategy.String())

	deficits := deficit.Compute(squad, p.PositionRequirements)
	bounds := s.scorer.Bounds(candidates)

	pool := workerpool.NewPool(s.workerCount, workerpool.ScorerFunc(func(c model.Candidate) model.ScoredCandidate {
		return s.scorer.Score(c, p, deficits, bounds)
	}))
	scored, err := pool.ScoreAll(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}

	return &Result{
		RunID:     uuid.NewString(),
		Policy:    p,
		Deficits:  deficits,
		Bounds:    bounds,
		Ranked:    ranking.Rank(scored),
		SquadSize: len(squad),
		StartedAt: start,
		Duration:  time.Since(start),
	}, nil
}

// Run loads both tables, evaluates them, publishes the shortlist and writes
// the ranked CSV when an output path is configured.
func (s *Service) Run(ctx context.Context, candidatesPath, squadPath string) (res *Result, err error) {
	start := time.Now()
	defer func() {
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusFailure
		}
		metrics.RecordBatchRun(status, time.Since(start).Seconds())
	}()

	cands, err := s.reader.LoadCandidates(ctx, candidatesPath)
	if err != nil {
		return nil, err
	}
	squad, err := s.reader.LoadSquad(ctx, squadPath)
	if err != nil {
		return nil, err
	}

	res, err = s.Evaluate(ctx, cands.Candidates, squad.Members)
	if err != nil {
		return nil, err
	}
	res.Header = cands.Header
	res.StartedAt = start
	log := s.logger.With(logger.String("run_id", res.RunID))

	if err := s.store.Publish(ctx, res.Ranked); err != nil {
		return nil, fmt.Errorf("publish shortlist: %w", err)
	}

	if s.outputPath != "" {
		if err := dataset.Save(ctx, s.outputPath, res.Header, s.reader.Columns().Score, res.Ranked); err != nil {
			return nil, fmt.Errorf("write shortlist: %w", err)
		}
		log.Info(ctx, "shortlist written", logger.String("path", s.outputPath))
	}
	res.Duration = time.Since(start)

	s.mu.Lock()
	s.last = res
	s.mu.Unlock()

	fields := []logger.Field{
		logger.String("strategy", res.Policy.Strategy.String()),
		logger.Int("candidates", len(res.Ranked)),
		logger.Int("squad", res.SquadSize),
		logger.Int("open_positions", res.Deficits.Total()),
		logger.Duration("duration", res.Duration),
	}
	if len(res.Ranked) > 0 {
		fields = append(fields,
			logger.String("top", res.Ranked[0].Name),
			logger.Float64("top_score", res.Ranked[0].Score))
	}
	log.Info(ctx, "batch complete", fields...)

	return res, nil
}

// Result returns the latest batch result, or ErrNoResult.
func (s *Service) Result() (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, ErrNoResult
	}
	return s.last, nil
}

// TopN returns the first n shortlist entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	ranked, err := s.store.TopN(ctx, n)
	if err != nil {
		return nil, err
	}

	entries := make([]types.Entry, len(ranked))
	for i, sc := range ranked {
		entries[i] = types.FromScored(sc)
	}
	return entries, nil
}

// Rank returns the shortlist entry for a candidate name.
func (s *Service) Rank(ctx context.Context, name string) (types.Entry, error) {
	sc, err := s.store.Rank(ctx, name)
	if err != nil {
		return types.Entry{}, err
	}
	return types.FromScored(sc), nil
}

// Policy returns the policy of the latest batch; zero before the first run.
func (s *Service) Policy() policy.ScoringPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return policy.ScoringPolicy{}
	}
	return s.last.Policy
}

// GetStats returns batch statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"strategy":    s.strategy.String(),
		"workerCount": s.workerCount,
		"completed":   s.last != nil,
	}
	if s.last != nil {
		stats["runId"] = s.last.RunID
		stats["candidates"] = len(s.last.Ranked)
		stats["squadSize"] = s.last.SquadSize
		stats["openPositions"] = s.last.Deficits.Total()
		stats["deficits"] = s.last.Deficits
		stats["startedAt"] = s.last.StartedAt.UTC().Format(time.RFC3339)
		stats["durationMs"] = s.last.Duration.Milliseconds()
	}
	return stats
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/scout/internal/adapters/dataset"
	"github.com/okian/scout/internal/adapters/http/api"
	"github.com/okian/scout/internal/adapters/http/swagger"
	"github.com/okian/scout/internal/adapters/repository"
	service "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/config"
	"github.com/okian/scout/internal/domain/policy"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Bootstrap logger so config errors are structured; re-initialized below
	// once the configured format is known.
	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Get().Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg); err != nil {
		metrics.RecordErrorByComponent("main", "run")
		logger.Get().Error(ctx, "scout failed", logger.Error(err))
		os.Exit(1)
	}
}

// run evaluates the configured datasets and, when serving is enabled, keeps
// the result available over HTTP until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	if _, err := svc.Run(ctx, cfg.CandidatesPath, cfg.SquadPath); err != nil {
		return fmt.Errorf("evaluate shortlist: %w", err)
	}

	if !cfg.Serve {
		return nil
	}
	return serve(ctx, newHTTPServer(ctx, cfg, svc))
}

// newService wires the batch service from configuration.
func newService(cfg *config.Config) (*service.Service, error) {
	strategy, err := cfg.ParsedStrategy()
	if err != nil {
		return nil, err
	}

	opts := []service.Option{
		service.WithStrategy(strategy),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithOutputPath(cfg.OutputPath),
		service.WithLogger(logger.Named("service")),
		service.WithScorer(scoring.NewScorer(scoring.WithDegenerateScore(cfg.DegenerateScore))),
	}

	readerOpts := []dataset.Option{dataset.WithRoleColumns(cfg.RoleColumns)}
	var storeOpts []repository.Option
	if cfg.CaseInsensitiveNames {
		readerOpts = append(readerOpts, dataset.WithCaseInsensitiveNames())
		storeOpts = append(storeOpts, repository.WithCaseInsensitiveLookup())
	}
	opts = append(opts,
		service.WithReader(dataset.NewReader(readerOpts...)),
		service.WithStore(repository.NewMemoryStore(storeOpts...)),
	)

	if cfg.PolicyFile != "" {
		ov, err := policy.LoadOverrides(cfg.PolicyFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithOverrides(ov))
	}

	return service.New(opts...), nil
}

// newHTTPServer registers the read-only API and the OpenAPI document.
func newHTTPServer(ctx context.Context, cfg *config.Config, svc *service.Service) *http.Server {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, cfg.MaxShortlistLimit).Register(ctx, mux)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Get().Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Get().Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Get().Info(ctx, "server stopped")
	return nil
}

package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/scout/internal/smoketest"
)

// Default configuration constants.
const (
	defaultTopN        = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 5 * time.Minute
	defaultCandidates  = 500
	defaultSquad       = 25
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		topN       = flag.Int("top", defaultTopN, "Number of shortlist entries to fetch and verify")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent rank lookups")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		generate   = flag.String("generate", "", "Write synthetic datasets to this directory and exit")
		candidates = flag.Int("candidates", defaultCandidates, "Number of synthetic candidates")
		squad      = flag.Int("squad", defaultSquad, "Number of synthetic squad members")
		seed       = flag.Uint64("seed", 1, "Generator seed")
		logFile    = flag.String("log", "", "Log file (default: smoke_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoketest.ShowHelp()
		return
	}

	file, err := smoketest.SetupLogging(*logFile, *verbose)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = file.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &smoketest.Config{
		BaseURL:    *baseURL,
		TopN:       *topN,
		Workers:    *workers,
		Timeout:    *timeout,
		FixtureDir: *generate,
		Candidates: *candidates,
		SquadSize:  *squad,
		Seed:       *seed,
		Verbose:    *verbose,
	}

	if config.FixtureDir != "" {
		if _, _, err := smoketest.WriteFixtures(ctx, config, &smoketest.Stats{}); err != nil {
			_, _ = os.Stderr.WriteString("Fixture generation failed: " + err.Error() + "\n")
			os.Exit(1)
		}
		return
	}

	if _, err := smoketest.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Smoke test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

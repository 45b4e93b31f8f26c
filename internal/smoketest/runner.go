// Package smoketest drives a running shortlist service over HTTP and checks
// that what it serves is consistently ranked.
package smoketest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/scout/pkg/logger"
)

// Run executes the complete smoke test against config.BaseURL.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting scout smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("topN", config.TopN),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the shortlist
	shortlist, err := getShortlist(ctx, client, config, stats)
	if err != nil {
		return stats, fmt.Errorf("shortlist retrieval failed: %w", err)
	}

	// Step 3: Look up every shortlisted name
	names := make([]string, len(shortlist))
	for i, e := range shortlist {
		names[i] = e.Name
	}
	rankings := retrieveRankings(ctx, client, config, names, stats)

	// Step 4: Verify results
	if err := verifyResults(ctx, config, shortlist, rankings); err != nil {
		return stats, fmt.Errorf("result verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "smoke test completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any 200 is healthy; the body is the Prometheus exposition.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// displayFinalStats logs the final smoke test statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("candidatesGenerated", stats.CandidatesGenerated),
		logger.Int("squadGenerated", stats.SquadGenerated),
		logger.Int("shortlistEntries", stats.ShortlistEntries),
		logger.Int("rankLookups", stats.RankLookups),
		logger.Int("rankFailures", stats.RankFailures),
		logger.Duration("duration", stats.Duration))
}

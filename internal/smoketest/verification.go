package smoketest

import (
	"context"
	"fmt"

	"github.com/okian/scout/pkg/logger"
)

// verifyShortlistOrder checks that ranks are 1..n and that entries are
// ordered by score descending, then name ascending.
func verifyShortlistOrder(shortlist []Entry) error {
	for i, e := range shortlist {
		if e.Rank != i+1 {
			return fmt.Errorf("%w: entry %d (%s) has rank %d", ErrInconsistent, i, e.Name, e.Rank)
		}
		if i == 0 {
			continue
		}
		prev := shortlist[i-1]
		if e.Score > prev.Score {
			return fmt.Errorf("%w: %s (%.6f) scores above %s (%.6f) but ranks below it",
				ErrInconsistent, e.Name, e.Score, prev.Name, prev.Score)
		}
		if e.Score == prev.Score && e.Name < prev.Name {
			return fmt.Errorf("%w: tie between %s and %s not broken by name", ErrInconsistent, prev.Name, e.Name)
		}
	}
	return nil
}

// verifyRankings checks that every per-name lookup agrees with the shortlist.
func verifyRankings(shortlist, rankings []Entry) error {
	for i, want := range shortlist {
		got := rankings[i]
		if got.Name == "" {
			return fmt.Errorf("%w: no rank lookup for %s", ErrInconsistent, want.Name)
		}
		if got.Name != want.Name || got.Rank != want.Rank || got.Score != want.Score {
			return fmt.Errorf("%w: lookup of %s returned rank %d score %.6f, shortlist has rank %d score %.6f",
				ErrInconsistent, want.Name, got.Rank, got.Score, want.Rank, want.Score)
		}
	}
	return nil
}

// verifyResults runs every consistency check and logs the top of the list.
func verifyResults(ctx context.Context, config *Config, shortlist, rankings []Entry) error {
	logger.Get().Info(ctx, "verifying results")

	if len(shortlist) == 0 {
		return fmt.Errorf("%w: empty shortlist", ErrInconsistent)
	}
	if err := verifyShortlistOrder(shortlist); err != nil {
		return err
	}
	if err := verifyRankings(shortlist, rankings); err != nil {
		return err
	}

	displayTopCandidates(ctx, shortlist, config.Verbose)
	logger.Get().Info(ctx, "result verification completed")
	return nil
}

// displayTopCandidates logs the head of the shortlist.
func displayTopCandidates(ctx context.Context, shortlist []Entry, verbose bool) {
	topN := min(10, len(shortlist))
	for _, e := range shortlist[:topN] {
		logger.Get().Info(ctx, "top candidate",
			logger.Int("rank", e.Rank), logger.String("name", e.Name), logger.Float64("score", e.Score))
	}

	if verbose {
		logger.Get().Info(ctx, "score statistics",
			logger.Float64("average", calculateAverageScore(shortlist)),
			logger.Float64("maximum", shortlist[0].Score),
			logger.Float64("minimum", shortlist[len(shortlist)-1].Score))
	}
}

// calculateAverageScore calculates the average score of entries.
func calculateAverageScore(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}

	sum := 0.0
	for _, e := range entries {
		sum += e.Score
	}

	return sum / float64(len(entries))
}

package smoketest

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/okian/scout/pkg/logger"
)

// getShortlist retrieves the top N shortlist entries.
func getShortlist(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) ([]Entry, error) {
	logger.Get().Info(ctx, "fetching shortlist", logger.Int("topN", config.TopN))

	var shortlist []Entry
	if err := client.GetJSON(ctx, fmt.Sprintf("%s/shortlist?limit=%d", config.BaseURL, config.TopN), &shortlist); err != nil {
		return nil, err
	}

	stats.ShortlistEntries = len(shortlist)
	logger.Get().Info(ctx, "shortlist retrieved", logger.Int("entries", len(shortlist)))
	return shortlist, nil
}

// retrieveRankings looks up every shortlisted name concurrently. Failed
// lookups leave a zero entry at their index.
func retrieveRankings(ctx context.Context, client *HTTPClient, config *Config, names []string, stats *Stats) []Entry {
	workers := max(min(config.Workers, len(names)), 1)
	logger.Get().Info(ctx, "retrieving rankings",
		logger.Int("names", len(names)), logger.Int("workers", workers))

	rankings := make([]Entry, len(names))
	var retrieved, failed int64

	indexChan := make(chan int, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexChan {
				entry, err := retrieveSingleRanking(ctx, client, config.BaseURL, names[index])
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "rank lookup failed",
							logger.String("name", names[index]), logger.Error(err))
					}
					continue
				}
				rankings[index] = entry
				atomic.AddInt64(&retrieved, 1)
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range names {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.RankLookups = int(atomic.LoadInt64(&retrieved))
	stats.RankFailures = int(atomic.LoadInt64(&failed))
	logger.Get().Info(ctx, "ranking retrieval completed",
		logger.Int("retrieved", stats.RankLookups), logger.Int("failed", stats.RankFailures))
	return rankings
}

// retrieveSingleRanking retrieves the ranking of one candidate.
func retrieveSingleRanking(ctx context.Context, client *HTTPClient, baseURL, name string) (Entry, error) {
	var entry Entry
	if err := client.GetJSON(ctx, baseURL+"/rank/"+url.PathEscape(name), &entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

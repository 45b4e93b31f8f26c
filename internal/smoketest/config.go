package smoketest

import (
	"time"

	"github.com/okian/scout/internal/domain/types"
)

// Config holds configuration for a smoke test run.
type Config struct {
	BaseURL    string        // Base URL of the service
	TopN       int           // Number of shortlist entries to fetch
	Workers    int           // Number of concurrent rank lookups
	Timeout    time.Duration // HTTP request timeout
	FixtureDir string        // Directory to write synthetic datasets to; empty skips generation
	Candidates int           // Number of synthetic candidates
	SquadSize  int           // Number of synthetic squad members
	Seed       uint64        // Generator seed; equal seeds produce equal datasets
	Verbose    bool          // Enable verbose logging
}

// Entry is the shortlist record returned by the service.
type Entry = types.Entry

// Stats holds smoke test statistics.
type Stats struct {
	CandidatesGenerated int
	SquadGenerated      int
	ShortlistEntries    int
	RankLookups         int
	RankFailures        int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}

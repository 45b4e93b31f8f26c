package smoketest

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/scout/pkg/logger"
)

// SetupLogging sends log output to stdout and a file. If logFile is empty, a
// timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) (*os.File, error) {
	if logFile == "" {
		logFile = "smoke_log_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return file, nil
}

// ShowHelp prints usage information for the smoke test tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Scout Smoke Test Tool
=====================

Generates synthetic scouting datasets and checks the shortlist served by a
running scout instance.

Usage:
  go run ./cmd/scout-smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -top int
        Number of shortlist entries to fetch and verify (default 50)
  -workers int
        Number of concurrent rank lookups (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -generate string
        Write synthetic datasets to this directory and exit
  -candidates int
        Number of synthetic candidates (default 500)
  -squad int
        Number of synthetic squad members (default 25)
  -seed uint
        Generator seed (default 1)
  -log string
        Log file (default: smoke_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Generate datasets, then evaluate and serve them
  go run ./cmd/scout-smoke -generate ./fixtures
  SCOUT_CANDIDATES_PATH=fixtures/general_shortlist.csv SCOUT_SQUAD_PATH=fixtures/squad.csv SCOUT_SERVE=true go run ./cmd

  # Verify the served shortlist
  go run ./cmd/scout-smoke -top 100
`)
}

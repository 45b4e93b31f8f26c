// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and SCOUT_* env vars.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/scout/internal/domain/policy"
)

// Default configuration constants.
const (
	DefaultCandidatesPath    = "general_shortlist.csv"
	DefaultSquadPath         = "squad.csv"
	DefaultOutputPath        = "sorted_transfer_targets.csv"
	DefaultAddr              = ":9080"
	DefaultMaxShortlistLimit = 100
)

// DefaultRoleColumns are the role-ability columns read from the datasets.
func DefaultRoleColumns() []string {
	return []string{"afa", "ifs", "ama", "dmd", "bpdd", "fba", "sks"}
}

var validate = validator.New()

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`

	// CandidatesPath is the merged shortlist CSV to evaluate.
	CandidatesPath string `koanf:"candidates_path" validate:"required"`

	// SquadPath is the current roster CSV.
	SquadPath string `koanf:"squad_path" validate:"required"`

	// OutputPath receives the ranked CSV. Empty disables the file output.
	OutputPath string `koanf:"output_path"`

	// Strategy names the policy strategy: manual, heuristic, statistical or 1|2|3.
	Strategy string `koanf:"strategy" validate:"required"`

	// PolicyFile is an optional JSON override document for the manual strategy.
	PolicyFile string `koanf:"policy_file"`

	// RoleColumns lists the role-ability columns of both datasets.
	RoleColumns []string `koanf:"role_columns" validate:"min=1,dive,required"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count" validate:"gte=1"`

	// DegenerateScore is the price/age sub-score when a batch has no spread.
	DegenerateScore float64 `koanf:"degenerate_score" validate:"gte=0,lte=1"`

	// CaseInsensitiveNames folds case when detecting duplicate candidate names.
	CaseInsensitiveNames bool `koanf:"case_insensitive_names"`

	// Serve keeps the process alive with a read-only HTTP view of the result.
	Serve bool `koanf:"serve"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required_if=Serve true"`

	// MaxShortlistLimit caps GET /shortlist?limit.
	MaxShortlistLimit int `koanf:"max_shortlist_limit" validate:"gte=1"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		CandidatesPath:    DefaultCandidatesPath,
		SquadPath:         DefaultSquadPath,
		OutputPath:        DefaultOutputPath,
		Strategy:          policy.StrategyStatistical.String(),
		RoleColumns:       DefaultRoleColumns(),
		WorkerCount:       runtime.NumCPU(),
		DegenerateScore:   1.0,
		Addr:              DefaultAddr,
		MaxShortlistLimit: DefaultMaxShortlistLimit,
	}
}

// ParsedStrategy returns the configured strategy as a policy.Strategy.
func (c *Config) ParsedStrategy() (policy.Strategy, error) {
	s, err := policy.ParseStrategy(c.Strategy)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s, nil
}

// Validate reports every invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	if c.Strategy != "" {
		if _, err := policy.ParseStrategy(c.Strategy); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

// Package dataset reads the candidate and squad tables and writes the ranked
// shortlist back out as CSV.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/creasty/defaults"

	"github.com/okian/scout/internal/domain/dedupe"
	"github.com/okian/scout/internal/domain/deficit"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/valuation"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Table labels used in logs and metrics.
const (
	TableCandidates = "candidates"
	TableSquad      = "squad"
)

// CandidateTable is a parsed candidate file.
type CandidateTable struct {
	Header     []string
	Candidates []model.Candidate
}

// SquadTable is a parsed squad file.
type SquadTable struct {
	Header  []string
	Members []model.SquadMember
}

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithColumns replaces the column names. Empty fields keep their defaults.
func WithColumns(c Columns) Option {
	return func(r *Reader) {
		// Fill blanks from the struct tags.
		_ = defaults.Set(&c)
		r.cols = c
	}
}

// WithRoleColumns sets the role-ability columns.
func WithRoleColumns(roles []string) Option {
	return func(r *Reader) {
		if len(roles) > 0 {
			r.cols.Roles = append([]string(nil), roles...)
		}
	}
}

// WithCaseInsensitiveNames folds case when detecting duplicate names.
func WithCaseInsensitiveNames() Option {
	return func(r *Reader) {
		r.dedupeOpts = append(r.dedupeOpts, dedupe.WithCaseInsensitive())
	}
}

// Reader parses the scouting CSV exports.
type Reader struct {
	cols       Columns
	dedupeOpts []dedupe.Option
	log        logger.Logger
}

// NewReader creates a reader with configuration options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		cols: DefaultColumns(),
		log:  logger.Get().Named("dataset"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Columns returns the column names in use.
func (r *Reader) Columns() Columns { return r.cols }

// LoadCandidates reads the candidate file at path.
func (r *Reader) LoadCandidates(ctx context.Context, path string) (*CandidateTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidates: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := r.ReadCandidates(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read candidates %s: %w", path, err)
	}
	return t, nil
}

// LoadSquad reads the squad file at path.
func (r *Reader) LoadSquad(ctx context.Context, path string) (*SquadTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open squad: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := r.ReadSquad(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read squad %s: %w", path, err)
	}
	return t, nil
}

// ReadCandidates parses a candidate table. Rows with an unparseable Age or a
// blank Name are skipped; later rows repeating a name are dropped.
func (r *Reader) ReadCandidates(ctx context.Context, src io.Reader) (*CandidateTable, error) {
	header, rows, err := readAll(src)
	if err != nil {
		return nil, err
	}
	idx := newIndex(header)
	pos, err := idx.require(r.cols.Name, r.cols.Age, r.cols.Position, r.cols.TransferValue)
	if err != nil {
		return nil, err
	}
	namePos, agePos, positionPos, valuePos := pos[0], pos[1], pos[2], pos[3]
	typePos := idx.optional(r.cols.PlayerType)
	roles := r.rolePositions(ctx, idx, TableCandidates)

	seen := dedupe.New(r.dedupeOpts...)
	out := &CandidateTable{Header: header, Candidates: make([]model.Candidate, 0, len(rows))}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := i + 2
		name := cell(row, namePos)
		age, err := parseAge(cell(row, agePos))
		if err == nil && name == "" {
			err = errors.New("blank name")
		}
		if err != nil {
			r.skip(ctx, TableCandidates, line, err)
			continue
		}
		if seen.SeenAndRecord(ctx, name) {
			metrics.RecordDuplicateName()
			r.log.Warn(ctx, "duplicate candidate name dropped",
				logger.String("name", name), logger.Int("line", line))
			continue
		}

		value := cell(row, valuePos)
		if _, err := valuation.ParseStrict(value); err != nil {
			metrics.RecordMalformedPrice()
			r.log.Warn(ctx, "transfer value scored as 0",
				logger.String("name", name), logger.String("value", value), logger.Error(err))
		}

		out.Candidates = append(out.Candidates, model.Candidate{
			Name:          name,
			Age:           age,
			Positions:     deficit.SplitTags(cell(row, positionPos)),
			TransferValue: value,
			Category:      model.ParseCategory(cell(row, typePos)),
			Abilities:     r.abilities(ctx, row, roles, name),
			Fields:        pad(row, len(header)),
		})
	}

	metrics.SetCandidatesLoaded(len(out.Candidates))
	r.log.Info(ctx, "candidates loaded",
		logger.Int("rows", len(rows)), logger.Int("candidates", len(out.Candidates)))
	return out, nil
}

// ReadSquad parses a squad table. Age is optional for squad members; an
// unparseable Age skips the row when the column is present.
func (r *Reader) ReadSquad(ctx context.Context, src io.Reader) (*SquadTable, error) {
	header, rows, err := readAll(src)
	if err != nil {
		return nil, err
	}
	idx := newIndex(header)
	pos, err := idx.require(r.cols.Name, r.cols.Position)
	if err != nil {
		return nil, err
	}
	namePos, positionPos := pos[0], pos[1]
	agePos := idx.optional(r.cols.Age)
	roles := r.rolePositions(ctx, idx, TableSquad)

	out := &SquadTable{Header: header, Members: make([]model.SquadMember, 0, len(rows))}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := i + 2
		name := cell(row, namePos)
		age := 0
		if agePos >= 0 {
			if age, err = parseAge(cell(row, agePos)); err != nil {
				r.skip(ctx, TableSquad, line, err)
				continue
			}
		}

		out.Members = append(out.Members, model.SquadMember{
			Name:      name,
			Age:       age,
			Positions: deficit.SplitTags(cell(row, positionPos)),
			Abilities: r.abilities(ctx, row, roles, name),
			Fields:    pad(row, len(header)),
		})
	}

	metrics.SetSquadLoaded(len(out.Members))
	r.log.Info(ctx, "squad loaded", logger.Int("members", len(out.Members)))
	return out, nil
}

type rolePos struct {
	code string
	pos  int
}

// rolePositions resolves the role columns present in the header. Absent role
// columns are not fatal: every record simply has no data for that role.
func (r *Reader) rolePositions(ctx context.Context, idx index, table string) []rolePos {
	out := make([]rolePos, 0, len(r.cols.Roles))
	for _, code := range r.cols.Roles {
		p := idx.optional(code)
		if p < 0 {
			r.log.Warn(ctx, "role column absent", logger.String("table", table), logger.String("role", code))
			continue
		}
		out = append(out, rolePos{code: code, pos: p})
	}
	return out
}

func (r *Reader) abilities(ctx context.Context, row []string, roles []rolePos, name string) map[string]float64 {
	out := make(map[string]float64, len(roles))
	for _, rp := range roles {
		v, err := ParseAbility(cell(row, rp.pos))
		if err != nil {
			metrics.RecordMissingAbility()
			r.log.Debug(ctx, "ability excluded",
				logger.String("name", name), logger.String("role", rp.code), logger.Error(err))
			continue
		}
		out[rp.code] = v
	}
	return out
}

func (r *Reader) skip(ctx context.Context, table string, line int, cause error) {
	metrics.RecordSkippedRow(table)
	r.log.Warn(ctx, "row skipped",
		logger.String("table", table),
		logger.Error(fmt.Errorf("%w: line %d: %w", ErrInvalidRow, line, cause)))
}

// ParseAbility parses a role-ability cell. Empty, non-numeric and values
// outside [0, 20] are reported as model.ErrMissingAbility.
func ParseAbility(s string) (float64, error) {
	if s == "" {
		return 0, model.ErrMissingAbility
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", model.ErrMissingAbility, s)
	}
	if v < 0 || v > model.MaxAbility {
		return 0, fmt.Errorf("%w: %v out of range", model.ErrMissingAbility, v)
	}
	return v, nil
}

// parseAge accepts integers and integral decimals such as "23.0".
func parseAge(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("age %q is not a whole number", s)
	}
	return int(f), nil
}

func readAll(src io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyTable
	}
	if err != nil {
		return nil, nil, fmt.Errorf("header: %w", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return header, rows, nil
}

// pad copies row and extends it to n cells so output rows line up with the header.
func pad(row []string, n int) []string {
	out := make([]string, max(n, len(row)))
	copy(out, row)
	return out
}

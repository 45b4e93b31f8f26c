package smoketest

import (
	"context"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/scout/pkg/logger"
)

// Generation ranges.
const (
	minAge          = 16
	ageSpread       = 19
	minPriceK       = 250
	priceSpreadK    = 120_000
	notForSaleRatio = 0.03
	rangeRatio      = 0.15
	blankRoleRatio  = 0.4
	maxAbility      = 20
	squadMinAbility = 8
	squadSpread     = 10
)

var (
	positions   = []string{"GK", "D (C)", "D (L)", "D (R)", "DM", "M (C)", "AM (L)", "AM (R)", "AM (C)", "ST (C)"}
	playerTypes = []string{"wonderkids", "squad_players", "starters"}
	roleColumns = []string{"afa", "ifs", "ama", "dmd", "bpdd", "fba", "sks"}
)

// Generator produces synthetic scouting datasets.
type Generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

// NewGenerator creates a generator. Equal seeds yield equal output.
func NewGenerator(seed uint64) *Generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	return &Generator{src: src, rng: rand.New(src)}
}

// CandidateRows returns a header and n candidate rows with unique names.
func (g *Generator) CandidateRows(n int) ([][]string, error) {
	header := append([]string{"Name", "Age", "Position", "Transfer Value", "Player_Type"}, roleColumns...)
	rows := make([][]string, 0, n+1)
	rows = append(rows, header)
	for i := 0; i < n; i++ {
		name, err := g.name()
		if err != nil {
			return nil, err
		}
		row := []string{
			name,
			strconv.Itoa(minAge + g.rng.IntN(ageSpread)),
			g.positionField(),
			g.transferValue(),
			playerTypes[g.rng.IntN(len(playerTypes))],
		}
		rows = append(rows, append(row, g.abilities(0, maxAbility)...))
	}
	return rows, nil
}

// SquadRows returns a header and n squad member rows.
func (g *Generator) SquadRows(n int) ([][]string, error) {
	header := append([]string{"Name", "Age", "Position"}, roleColumns...)
	rows := make([][]string, 0, n+1)
	rows = append(rows, header)
	for i := 0; i < n; i++ {
		name, err := g.name()
		if err != nil {
			return nil, err
		}
		row := []string{name, strconv.Itoa(minAge + 2 + g.rng.IntN(ageSpread)), g.positionField()}
		rows = append(rows, append(row, g.abilities(squadMinAbility, squadSpread)...))
	}
	return rows, nil
}

func (g *Generator) name() (string, error) {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		return "", fmt.Errorf("generate name: %w", err)
	}
	return "Player " + id.String()[:8], nil
}

// positionField joins one or two distinct position tags.
func (g *Generator) positionField() string {
	first := g.rng.IntN(len(positions))
	if g.rng.IntN(3) > 0 {
		return positions[first]
	}
	second := (first + 1 + g.rng.IntN(len(positions)-1)) % len(positions)
	return positions[first] + ", " + positions[second]
}

func (g *Generator) transferValue() string {
	switch p := g.rng.Float64(); {
	case p < notForSaleRatio:
		return "Not for Sale"
	case p < notForSaleRatio+rangeRatio:
		lo := g.priceK()
		return money(lo) + " - " + money(lo*2)
	default:
		return money(g.priceK())
	}
}

func (g *Generator) priceK() int {
	return minPriceK + g.rng.IntN(priceSpreadK)
}

// money renders a price given in thousands the way the scouting export does.
func money(k int) string {
	if k < 1000 {
		return "€" + strconv.Itoa(k) + "K"
	}
	return "€" + strconv.FormatFloat(float64(k)/1000, 'f', 1, 64) + "M"
}

func (g *Generator) abilities(base, spread int) []string {
	out := make([]string, len(roleColumns))
	for i := range out {
		if g.rng.Float64() < blankRoleRatio {
			continue
		}
		v := float64(base) + g.rng.Float64()*float64(spread)
		out[i] = strconv.FormatFloat(min(v, maxAbility), 'f', 1, 64)
	}
	return out
}

// WriteFixtures writes a candidate and a squad file into cfg.FixtureDir and
// returns their paths.
func WriteFixtures(ctx context.Context, cfg *Config, stats *Stats) (string, string, error) {
	if err := os.MkdirAll(cfg.FixtureDir, directoryPermission); err != nil {
		return "", "", fmt.Errorf("failed to create directory: %w", err)
	}

	g := NewGenerator(cfg.Seed)
	candidates, err := g.CandidateRows(cfg.Candidates)
	if err != nil {
		return "", "", err
	}
	squad, err := g.SquadRows(cfg.SquadSize)
	if err != nil {
		return "", "", err
	}

	candidatesPath := filepath.Join(cfg.FixtureDir, CandidatesFile)
	squadPath := filepath.Join(cfg.FixtureDir, SquadFile)
	if err := writeCSV(candidatesPath, candidates); err != nil {
		return "", "", err
	}
	if err := writeCSV(squadPath, squad); err != nil {
		return "", "", err
	}

	stats.CandidatesGenerated = len(candidates) - 1
	stats.SquadGenerated = len(squad) - 1
	logger.Get().Info(ctx, "fixtures written",
		logger.String("candidates", candidatesPath),
		logger.String("squad", squadPath),
		logger.Int("candidateRows", stats.CandidatesGenerated),
		logger.Int("squadRows", stats.SquadGenerated))
	return candidatesPath, squadPath, nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

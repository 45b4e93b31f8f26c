package dataset

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
)

// Columns names the dataset columns the engine reads. Zero fields take the
// defaults from the struct tags.
type Columns struct {
	Name          string   `default:"Name"`
	Age           string   `default:"Age"`
	Position      string   `default:"Position"`
	TransferValue string   `default:"Transfer Value"`
	PlayerType    string   `default:"Player_Type"`
	Score         string   `default:"Score"`
	Roles         []string `default:"[\"afa\",\"ifs\",\"ama\",\"dmd\",\"bpdd\",\"fba\",\"sks\"]"`
}

// DefaultColumns returns the column names of the scouting exports.
func DefaultColumns() Columns {
	var c Columns
	// Only fails for a non-pointer argument.
	_ = defaults.Set(&c)
	return c
}

// index maps column names to their position in a header row.
type index map[string]int

func newIndex(header []string) index {
	idx := make(index, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

// require returns the position of every named column or ErrMissingColumn
// listing the absent ones.
func (idx index) require(names ...string) ([]int, error) {
	pos := make([]int, len(names))
	var missing []string
	for i, n := range names {
		p, ok := idx[n]
		if !ok {
			missing = append(missing, fmt.Sprintf("%q", n))
			continue
		}
		pos[i] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return pos, nil
}

// optional returns the position of name or -1.
func (idx index) optional(name string) int {
	if p, ok := idx[name]; ok {
		return p
	}
	return -1
}

// cell returns the trimmed value at pos, or "" for short rows and pos < 0.
func cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

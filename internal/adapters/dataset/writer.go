package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/scout/internal/domain/model"
)

// Write emits the ranked shortlist: the candidate header plus the score
// column, one row per record in the given order. An existing score column is
// overwritten in place.
func Write(ctx context.Context, dst io.Writer, header []string, scoreColumn string, ranked []model.ScoredCandidate) error {
	scorePos := newIndex(header).optional(scoreColumn)
	width := len(header)
	outHeader := append([]string(nil), header...)
	if scorePos < 0 {
		scorePos = width
		width++
		outHeader = append(outHeader, scoreColumn)
	}

	cw := csv.NewWriter(dst)
	if err := cw.Write(outHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, sc := range ranked {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := make([]string, width)
		copy(row, sc.Fields)
		row[scorePos] = strconv.FormatFloat(sc.Score, 'f', -1, 64)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", sc.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes the ranked shortlist to path. The file is replaced atomically.
func Save(ctx context.Context, path string, header []string, scoreColumn string, ranked []model.ScoredCandidate) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".scout-*.csv")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Write(ctx, tmp, header, scoreColumn, ranked); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}

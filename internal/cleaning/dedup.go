package cleaning

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"etlcli/internal/dataset"
)

// DuplicateRemover drops rows that are exact duplicates of an earlier
// row across all columns, keeping the first occurrence and preserving
// the relative order of the kept rows. Missing compares equal to missing
// for this purpose.
type DuplicateRemover struct {
	logger *slog.Logger
}

// NewDuplicateRemover creates a duplicate-row remover
func NewDuplicateRemover(logger *slog.Logger) *DuplicateRemover {
	return &DuplicateRemover{logger: logger}
}

// Name returns the stage name
func (r *DuplicateRemover) Name() string {
	return "duplicate_remover"
}

// Apply removes duplicate rows in place
func (r *DuplicateRemover) Apply(ctx context.Context, d *dataset.Dataset, _ dataset.Classification) error {
	before := d.NumRows()
	seen := make(map[string]struct{}, before)
	var kept [][]dataset.Cell

	for i := 0; i < before; i++ {
		row := d.Row(i)
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}

	if len(kept) != before {
		d.ReplaceRows(kept)
	}

	r.logger.InfoContext(ctx, "Removed duplicate rows",
		slog.Int("removed", before-d.NumRows()),
		slog.Int("remaining", d.NumRows()))
	return nil
}

// rowKey builds a comparison key for one row. Each cell is tagged by
// type and length-prefixed, so the number 1 never collides with the
// text "1" and cell boundaries stay unambiguous no matter what bytes
// the text contains.
func rowKey(row []dataset.Cell) string {
	var b strings.Builder
	for _, cell := range row {
		if cell.IsNull() {
			b.WriteString("n0:")
			continue
		}
		s := cell.String()
		if cell.IsNumeric() {
			b.WriteByte('f')
		} else {
			b.WriteByte('s')
		}
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}
	return b.String()
}

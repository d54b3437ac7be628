package cleaning

import (
	"context"
	"log/slog"
	"math"

	"etlcli/internal/dataset"
)

// CorrelationPruner drops numeric columns that are highly correlated
// with an earlier numeric column. Only the upper triangle of the
// correlation matrix is considered: a column is dropped when some
// earlier column (in the dataset's current column order) correlates with
// it beyond the threshold. The tie-break by column order is deliberate
// and deterministic.
type CorrelationPruner struct {
	threshold float64
	logger    *slog.Logger
}

// NewCorrelationPruner creates a correlated-feature pruner
func NewCorrelationPruner(threshold float64, logger *slog.Logger) *CorrelationPruner {
	return &CorrelationPruner{threshold: threshold, logger: logger}
}

// Name returns the stage name
func (p *CorrelationPruner) Name() string {
	return "correlation_pruner"
}

// Apply computes the pairwise Pearson matrix over the numeric columns
// and drops every column whose correlation with an earlier column
// exceeds the threshold in absolute value. The drop list is computed
// from the original matrix in one pass: columns marked for removal still
// count as "earlier" for later comparisons, so removals never cascade.
func (p *CorrelationPruner) Apply(ctx context.Context, d *dataset.Dataset, class dataset.Classification) error {
	var numeric []string
	for _, col := range d.Columns() {
		if class.IsNumeric(col.Name) {
			numeric = append(numeric, col.Name)
		}
	}
	if len(numeric) < 2 {
		p.logger.DebugContext(ctx, "Not enough numeric columns for correlation analysis",
			slog.Int("numeric_columns", len(numeric)))
		return nil
	}

	cells := make([][]dataset.Cell, len(numeric))
	for i, name := range numeric {
		idx, _ := d.ColumnIndex(name)
		cells[i] = d.ColumnCells(idx)
	}

	var toDrop []string
	for j := 1; j < len(numeric); j++ {
		for i := 0; i < j; i++ {
			if corr := Pearson(cells[i], cells[j]); math.Abs(corr) > p.threshold {
				p.logger.DebugContext(ctx, "Correlated column pair",
					slog.String("earlier", numeric[i]),
					slog.String("later", numeric[j]),
					slog.Float64("correlation", corr))
				toDrop = append(toDrop, numeric[j])
				break
			}
		}
	}

	d.DropColumns(toDrop)

	p.logger.InfoContext(ctx, "Removed highly correlated columns",
		slog.Float64("threshold", p.threshold),
		slog.Any("removed", toDrop),
		slog.Int("remaining_columns", d.NumColumns()))
	return nil
}

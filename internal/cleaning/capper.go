package cleaning

import (
	"context"
	"log/slog"

	"etlcli/internal/dataset"
	"etlcli/internal/errors"
)

// OutlierCapper clips the values of numeric columns to the interval
// between a lower and an upper percentile, in place. Values below the
// lower bound become the lower bound and values above the upper bound
// become the upper bound.
type OutlierCapper struct {
	lower   float64
	upper   float64
	columns []string
	logger  *slog.Logger
}

// NewOutlierCapper creates an outlier capper. columns optionally narrows
// the pass to an explicit subset; when empty, every numeric column is
// capped.
func NewOutlierCapper(lower, upper float64, columns []string, logger *slog.Logger) *OutlierCapper {
	return &OutlierCapper{lower: lower, upper: upper, columns: columns, logger: logger}
}

// Name returns the stage name
func (c *OutlierCapper) Name() string {
	return "outlier_capper"
}

// Apply caps each target column to its percentile bounds. A column with
// no non-missing values has no defined quantile and is skipped; a column
// with fewer than two distinct values collapses to a single value, which
// is accepted. Non-numeric columns are left untouched.
func (c *OutlierCapper) Apply(ctx context.Context, d *dataset.Dataset, class dataset.Classification) error {
	for _, idx := range resolveTargets(ctx, d, c.columns, class.Numeric, c.logger) {
		col := d.Columns()[idx]
		if !class.IsNumeric(col.Name) {
			c.logger.DebugContext(ctx, "Skipping non-numeric column",
				slog.String("stage", c.Name()),
				slog.String("column", col.Name))
			continue
		}

		values := columnFloats(d.ColumnCells(idx))
		if len(values) == 0 {
			err := errors.NewUndefinedStatisticError("quantile", col.Name)
			c.logger.WarnContext(ctx, "Skipping all-missing column",
				slog.String("stage", c.Name()),
				slog.String("column", col.Name),
				slog.String("error", err.Error()))
			continue
		}

		lowerBound, _ := Quantile(values, c.lower)
		upperBound, _ := Quantile(values, c.upper)

		capped := 0
		for r := 0; r < d.NumRows(); r++ {
			v, ok := d.Cell(r, idx).Float()
			if !ok {
				continue
			}
			switch {
			case v < lowerBound:
				d.SetCell(r, idx, dataset.Number(lowerBound))
				capped++
			case v > upperBound:
				d.SetCell(r, idx, dataset.Number(upperBound))
				capped++
			}
		}

		c.logger.InfoContext(ctx, "Capped outliers",
			slog.String("column", col.Name),
			slog.Float64("lower_bound", lowerBound),
			slog.Float64("upper_bound", upperBound),
			slog.Int("capped_values", capped))
	}
	return nil
}

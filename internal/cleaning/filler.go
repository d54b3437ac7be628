package cleaning

import (
	"context"
	"fmt"
	"log/slog"

	"etlcli/internal/dataset"
	"etlcli/internal/errors"
)

// Strategy selects how missing values are imputed
type Strategy string

const (
	// StrategyMedian fills missing values with the column median;
	// defaults to the numeric column set.
	StrategyMedian Strategy = "median"
	// StrategyMode fills missing values with the most frequent value;
	// defaults to the categorical column set.
	StrategyMode Strategy = "mode"
)

// ParseStrategy validates a strategy name. An unknown name is a
// configuration error.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMedian, StrategyMode:
		return Strategy(s), nil
	default:
		return "", errors.NewConfigError(
			fmt.Sprintf("invalid fill strategy %q: choose %q or %q", s, StrategyMedian, StrategyMode), nil)
	}
}

// MissingFiller imputes missing values per column using the configured
// strategy.
type MissingFiller struct {
	strategy Strategy
	columns  []string
	logger   *slog.Logger
}

// NewMissingFiller creates a missing-value filler. columns optionally
// overrides the strategy's default column set; explicitly requested
// columns are processed with the strategy regardless of their classified
// kind.
func NewMissingFiller(strategy string, columns []string, logger *slog.Logger) (*MissingFiller, error) {
	s, err := ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	return &MissingFiller{strategy: s, columns: columns, logger: logger}, nil
}

// Name returns the stage name
func (f *MissingFiller) Name() string {
	return "missing_filler"
}

// Apply fills missing values in each target column. A column whose
// non-missing values are empty has no defined median or mode; it is
// logged and left unfilled.
func (f *MissingFiller) Apply(ctx context.Context, d *dataset.Dataset, class dataset.Classification) error {
	defaults := class.Numeric
	if f.strategy == StrategyMode {
		defaults = class.Categorical
	}

	for _, idx := range resolveTargets(ctx, d, f.columns, defaults, f.logger) {
		name := d.Columns()[idx].Name
		fill, ok := f.fillValue(d.ColumnCells(idx))
		if !ok {
			err := errors.NewUndefinedStatisticError(string(f.strategy), name)
			f.logger.WarnContext(ctx, "Skipping all-missing column",
				slog.String("stage", f.Name()),
				slog.String("column", name),
				slog.String("error", err.Error()))
			continue
		}

		filled := 0
		for r := 0; r < d.NumRows(); r++ {
			if d.Cell(r, idx).IsNull() {
				d.SetCell(r, idx, fill)
				filled++
			}
		}

		f.logger.InfoContext(ctx, "Filled missing values",
			slog.String("column", name),
			slog.String("strategy", string(f.strategy)),
			slog.String("fill_value", fill.String()),
			slog.Int("filled_values", filled))
	}
	return nil
}

// fillValue computes the imputation value for one column's cells
func (f *MissingFiller) fillValue(cells []dataset.Cell) (dataset.Cell, bool) {
	if f.strategy == StrategyMode {
		return Mode(cells)
	}
	median, ok := Median(columnFloats(cells))
	if !ok {
		return dataset.Null(), false
	}
	return dataset.Number(median), true
}

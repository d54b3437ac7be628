package cleaning

import (
	"context"
	"log/slog"

	"etlcli/internal/dataset"
	"etlcli/internal/errors"
)

// resolveTargets maps the requested column names, or the defaults when no
// explicit subset was given, to column indexes. A requested name absent
// from the dataset is schema drift: it is logged and skipped, never
// fatal.
func resolveTargets(ctx context.Context, d *dataset.Dataset, requested, defaults []string, logger *slog.Logger) []int {
	names := requested
	if len(names) == 0 {
		names = defaults
	}

	targets := make([]int, 0, len(names))
	for _, name := range names {
		idx, ok := d.ColumnIndex(name)
		if !ok {
			err := errors.NewSchemaDriftError(name)
			logger.WarnContext(ctx, "Skipping column not present in dataset",
				slog.String("column", name),
				slog.String("error", err.Error()))
			continue
		}
		targets = append(targets, idx)
	}
	return targets
}

// Package etl wires the extraction, cleaning and load collaborators into
// the complete batch process: read a dataset from a file or table, run
// the cleaning pipeline over it, and persist the result.
package etl

import (
	"context"
	"fmt"
	"log/slog"

	"etlcli/internal/cleaning"
	"etlcli/internal/store"
)

// Process runs one extract-transform-load cycle
type Process struct {
	extractor store.DataHandler
	loader    store.DataHandler
	pipeline  *cleaning.Pipeline
	logger    *slog.Logger
}

// NewProcess assembles an ETL process from its collaborators
func NewProcess(extractor, loader store.DataHandler, pipeline *cleaning.Pipeline, logger *slog.Logger) *Process {
	if logger == nil {
		logger = slog.Default()
	}
	return &Process{
		extractor: extractor,
		loader:    loader,
		pipeline:  pipeline,
		logger:    logger.With("component", "etl"),
	}
}

// Run extracts the dataset from source, cleans it and loads it into
// dest. Extraction and load failures are fatal; the cleaning pipeline
// itself only fails on configuration errors and otherwise delivers a
// best-effort cleaned dataset.
func (p *Process) Run(ctx context.Context, source, dest string) error {
	p.logger.InfoContext(ctx, "Starting ETL run",
		slog.String("source", source),
		slog.String("dest", dest))

	d, err := p.extractor.Read(ctx, source)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	p.logger.InfoContext(ctx, "Extraction completed",
		slog.Int("rows", d.NumRows()),
		slog.Int("columns", d.NumColumns()))

	cleaned, err := p.pipeline.Run(ctx, d)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}

	if err := p.loader.Write(ctx, cleaned, dest); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	p.logger.InfoContext(ctx, "ETL run completed",
		slog.Int("rows", cleaned.NumRows()),
		slog.Int("columns", cleaned.NumColumns()))
	return nil
}

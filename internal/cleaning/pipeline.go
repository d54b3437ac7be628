package cleaning

import (
	"context"
	"fmt"
	"log/slog"

	"etlcli/internal/config"
	"etlcli/internal/dataset"
	"etlcli/internal/errors"
)

// Stage is one transformation pass over the dataset. Stages mutate the
// dataset they receive; partial failures inside a stage (one column that
// cannot be processed) are handled and logged by the stage itself and
// never surface as an error.
type Stage interface {
	// Name returns the unique identifier for this stage
	Name() string

	// Apply runs the stage against the dataset using the column
	// classification computed at pipeline entry
	Apply(ctx context.Context, d *dataset.Dataset, class dataset.Classification) error
}

// Options carries the tuning knobs for the cleaning pipeline
type Options struct {
	FillStrategy         string
	CapColumns           []string
	FillColumns          []string
	LowerPercentile      float64
	UpperPercentile      float64
	CorrelationThreshold float64
}

// DefaultOptions returns the default cleaning options
func DefaultOptions() Options {
	return Options{
		FillStrategy:         string(StrategyMedian),
		LowerPercentile:      0.01,
		UpperPercentile:      0.99,
		CorrelationThreshold: 0.9,
	}
}

// OptionsFromConfig maps the cleaning section of the application
// configuration onto pipeline options
func OptionsFromConfig(cfg config.CleaningConfig) Options {
	return Options{
		FillStrategy:         cfg.FillStrategy,
		CapColumns:           cfg.CapColumns,
		FillColumns:          cfg.FillColumns,
		LowerPercentile:      cfg.LowerPercentile,
		UpperPercentile:      cfg.UpperPercentile,
		CorrelationThreshold: cfg.CorrelationThreshold,
	}
}

// Pipeline runs the cleaning stages in fixed order: outlier capper,
// missing filler, duplicate remover, correlation pruner.
type Pipeline struct {
	stages []Stage
	logger *slog.Logger
}

// NewPipeline validates the options and assembles the pipeline. An
// invalid fill strategy or percentile range is a configuration error.
func NewPipeline(opts Options, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "cleaning")

	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	filler, err := NewMissingFiller(opts.FillStrategy, opts.FillColumns, logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		logger: logger,
		stages: []Stage{
			NewOutlierCapper(opts.LowerPercentile, opts.UpperPercentile, opts.CapColumns, logger),
			filler,
			NewDuplicateRemover(logger),
			NewCorrelationPruner(opts.CorrelationThreshold, logger),
		},
	}, nil
}

// validateOptions checks the numeric option ranges
func validateOptions(opts Options) error {
	if opts.LowerPercentile < 0 || opts.LowerPercentile > 1 ||
		opts.UpperPercentile < 0 || opts.UpperPercentile > 1 {
		return errors.NewConfigError(
			fmt.Sprintf("percentile bounds must lie in [0, 1], got (%v, %v)",
				opts.LowerPercentile, opts.UpperPercentile), nil)
	}
	if opts.LowerPercentile > opts.UpperPercentile {
		return errors.NewConfigError(
			fmt.Sprintf("lower percentile %v exceeds upper percentile %v",
				opts.LowerPercentile, opts.UpperPercentile), nil)
	}
	if opts.CorrelationThreshold < 0 || opts.CorrelationThreshold > 1 {
		return errors.NewConfigError(
			fmt.Sprintf("correlation threshold must lie in [0, 1], got %v",
				opts.CorrelationThreshold), nil)
	}
	return nil
}

// Run classifies the dataset's columns once and applies every stage in
// order. A stage failure that is not a configuration error is logged and
// the remaining stages run against the dataset as of the last successful
// mutation; a configuration error aborts the run.
func (p *Pipeline) Run(ctx context.Context, d *dataset.Dataset) (*dataset.Dataset, error) {
	p.logger.InfoContext(ctx, "Starting data cleaning",
		slog.Int("rows", d.NumRows()),
		slog.Int("columns", d.NumColumns()))

	class := dataset.Classify(d)
	p.logger.DebugContext(ctx, "Classified columns",
		slog.Any("numeric", class.Numeric),
		slog.Any("categorical", class.Categorical))

	for _, stage := range p.stages {
		if err := stage.Apply(ctx, d, class); err != nil {
			if errors.IsType(err, errors.ErrTypeConfig) {
				return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
			}
			p.logger.ErrorContext(ctx, "Stage failed, continuing with remaining stages",
				slog.String("stage", stage.Name()),
				slog.String("error", err.Error()))
		}
	}

	p.logger.InfoContext(ctx, "Data cleaning completed",
		slog.Int("rows", d.NumRows()),
		slog.Int("columns", d.NumColumns()))
	return d, nil
}

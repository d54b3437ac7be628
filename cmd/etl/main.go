package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"

	"etlcli/internal/cleaning"
	"etlcli/internal/config"
	"etlcli/internal/etl"
	"etlcli/internal/infrastructure"
	"etlcli/internal/store"
)

func main() {
	inPath := flag.String("in", "", "input file path (csv, json, xlsx or parquet)")
	inTable := flag.String("in-table", "", "input database table (overrides -in)")
	outDir := flag.String("out-dir", "", "output directory for the cleaned file")
	outFormat := flag.String("out-format", "", "output file format (csv, json, xlsx or parquet)")
	outTable := flag.String("out-table", "", "output database table (overrides -out-dir)")
	strategy := flag.String("strategy", "", "missing-value fill strategy (median or mode)")
	capColumns := flag.String("cap-columns", "", "comma-separated columns to cap (defaults to all numeric)")
	fillColumns := flag.String("fill-columns", "", "comma-separated columns to fill (defaults per strategy)")
	threshold := flag.Float64("threshold", -1, "correlation threshold for feature pruning (0 to 1)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	applyFlags(cfg, *inPath, *inTable, *outDir, *outFormat, *outTable, *strategy, *capColumns, *fillColumns)
	if *threshold >= 0 {
		cfg.Cleaning.CorrelationThreshold = *threshold
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	pipeline, err := cleaning.NewPipeline(cleaning.OptionsFromConfig(cfg.Cleaning), logger)
	if err != nil {
		logger.ErrorContext(ctx, "Invalid cleaning configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	extractor, loader, source, dest, cleanup, err := buildHandlers(ctx, cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to set up data handlers", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	process := etl.NewProcess(extractor, loader, pipeline, logger)
	if err := process.Run(ctx, source, dest); err != nil {
		logger.ErrorContext(ctx, "ETL run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// applyFlags overlays non-empty command line flags onto the configuration
func applyFlags(cfg *config.Config, inPath, inTable, outDir, outFormat, outTable, strategy, capColumns, fillColumns string) {
	if inTable != "" {
		cfg.Extract.Source = "table"
		cfg.Extract.Table = inTable
	} else if inPath != "" {
		cfg.Extract.Source = "file"
		cfg.Extract.Path = inPath
	}
	if outTable != "" {
		cfg.Load.Target = "table"
		cfg.Load.Table = outTable
	} else if outDir != "" {
		cfg.Load.Target = "file"
		cfg.Load.Dir = outDir
	}
	if outFormat != "" {
		cfg.Load.Format = outFormat
	}
	if strategy != "" {
		cfg.Cleaning.FillStrategy = strategy
	}
	if capColumns != "" {
		cfg.Cleaning.CapColumns = splitColumns(capColumns)
	}
	if fillColumns != "" {
		cfg.Cleaning.FillColumns = splitColumns(fillColumns)
	}
}

// splitColumns parses a comma-separated column list
func splitColumns(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// buildHandlers constructs the extraction and load collaborators from
// the configuration, sharing one database connection when both sides
// use it.
func buildHandlers(ctx context.Context, cfg *config.Config, logger *slog.Logger) (extractor, loader store.DataHandler, source, dest string, cleanup func(), err error) {
	cleanup = func() {}

	var pg *store.PostgresHandler
	if cfg.Extract.Source == "table" || cfg.Load.Target == "table" {
		pg, err = store.NewPostgresHandler(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, "", "", cleanup, err
		}
		cleanup = pg.Close
	}

	if cfg.Extract.Source == "table" {
		extractor = pg
		source = cfg.Extract.Table
	} else {
		extractor = store.NewLocalHandler(store.FormatCSV, "", logger)
		source = cfg.Extract.Path
	}

	if cfg.Load.Target == "table" {
		loader = pg
		dest = cfg.Load.Table
	} else {
		format, formatErr := store.ParseFormat(cfg.Load.Format)
		if formatErr != nil {
			cleanup()
			return nil, nil, "", "", func() {}, formatErr
		}
		loader = store.NewLocalHandler(format, cfg.Load.BaseName, logger)
		dest = cfg.Load.Dir
	}

	return extractor, loader, source, dest, cleanup, nil
}

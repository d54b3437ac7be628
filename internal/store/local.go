package store

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"etlcli/internal/dataset"
	"etlcli/internal/errors"
)

// LocalHandler reads and writes datasets as local files. The read format
// is taken from the source path's extension; the write format and base
// file name are fixed at construction, and written files get a
// timestamped name inside the destination directory.
type LocalHandler struct {
	format   Format
	baseName string
	logger   *slog.Logger
	now      func() time.Time
}

// NewLocalHandler creates a local file handler that writes files of the
// given format named after baseName.
func NewLocalHandler(format Format, baseName string, logger *slog.Logger) *LocalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalHandler{
		format:   format,
		baseName: baseName,
		logger:   logger.With("component", "local_store"),
		now:      time.Now,
	}
}

// Read loads a dataset from the file at source, dispatching on its
// extension.
func (h *LocalHandler) Read(ctx context.Context, source string) (*dataset.Dataset, error) {
	format, err := FormatForPath(source)
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Reading local file",
		slog.String("path", source),
		slog.String("format", format.String()))

	var d *dataset.Dataset
	switch format {
	case FormatCSV:
		d, err = readCSV(source)
	case FormatJSON:
		d, err = readJSON(source)
	case FormatXLSX:
		d, err = readXLSX(source)
	case FormatParquet:
		d, err = readParquet(source)
	}
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to read %s", source), err)
	}

	h.logger.InfoContext(ctx, "Read local file",
		slog.String("path", source),
		slog.Int("rows", d.NumRows()),
		slog.Int("columns", d.NumColumns()))
	return d, nil
}

// Write stores the dataset in the destination directory under a
// timestamped file name, creating the directory if needed.
func (h *LocalHandler) Write(ctx context.Context, d *dataset.Dataset, dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dest), err)
	}

	path := h.generateFileName(dest)

	var err error
	switch h.format {
	case FormatCSV:
		err = writeCSV(path, d)
	case FormatJSON:
		err = writeJSON(path, d)
	case FormatXLSX:
		err = writeXLSX(path, d)
	case FormatParquet:
		err = writeParquet(path, d)
	}
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write %s", path), err)
	}

	h.logger.InfoContext(ctx, "Wrote local file",
		slog.String("path", path),
		slog.Int("rows", d.NumRows()),
		slog.Int("columns", d.NumColumns()))
	return nil
}

// generateFileName builds a timestamped file name in the output directory
func (h *LocalHandler) generateFileName(dir string) string {
	stamp := h.now().Format("02-01-2006_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", h.baseName, stamp, h.format))
}

// gridToDataset converts a header row plus string records into a typed
// dataset. A column is numeric when every non-empty value parses as a
// number, integer when those values are all integral; empty strings are
// missing values.
func gridToDataset(headers []string, records [][]string) (*dataset.Dataset, error) {
	kinds := make([]dataset.Kind, len(headers))
	for c := range headers {
		kinds[c] = inferColumnKind(records, c)
	}

	columns := make([]dataset.Column, len(headers))
	for c, name := range headers {
		columns[c] = dataset.Column{Name: strings.TrimSpace(name), Kind: kinds[c]}
	}

	d := dataset.New(columns)
	for _, record := range records {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("record has %d fields, header has %d", len(record), len(headers))
		}
		cells := make([]dataset.Cell, len(record))
		for c, raw := range record {
			cells[c] = parseCell(raw, kinds[c])
		}
		if err := d.AppendRow(cells); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// inferColumnKind inspects one column of string records
func inferColumnKind(records [][]string, col int) dataset.Kind {
	numeric := true
	integral := true
	seen := 0
	for _, record := range records {
		if col >= len(record) {
			continue
		}
		raw := strings.TrimSpace(record[col])
		if raw == "" || missingToken(raw) {
			continue
		}
		seen++
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			numeric = false
			break
		}
		if v != math.Trunc(v) {
			integral = false
		}
	}
	switch {
	case seen == 0 || !numeric:
		return dataset.KindCategorical
	case integral:
		return dataset.KindInteger
	default:
		return dataset.KindFloat
	}
}

// parseCell converts one raw string value using the column's kind
func parseCell(raw string, kind dataset.Kind) dataset.Cell {
	raw = strings.TrimSpace(raw)
	if raw == "" || missingToken(raw) {
		return dataset.Null()
	}
	if kind.IsNumeric() {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return dataset.Number(v)
		}
	}
	return dataset.Text(raw)
}

// missingToken reports whether a raw value spells a non-finite number
// such as "NaN" or "Inf". The upstream exports use these for missing
// values, so they parse to missing cells rather than numbers that would
// poison every statistic downstream.
func missingToken(raw string) bool {
	v, err := strconv.ParseFloat(raw, 64)
	return err == nil && (math.IsNaN(v) || math.IsInf(v, 0))
}

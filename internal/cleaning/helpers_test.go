package cleaning

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"etlcli/internal/dataset"
)

// testLogger returns a logger that swallows output
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// buildDataset constructs a dataset from column names and rows of cells
func buildDataset(t *testing.T, names []string, rows ...[]dataset.Cell) *dataset.Dataset {
	t.Helper()
	columns := make([]dataset.Column, len(names))
	for i, name := range names {
		columns[i] = dataset.Column{Name: name}
	}
	d := dataset.New(columns)
	for _, row := range rows {
		require.NoError(t, d.AppendRow(row))
	}
	return d
}

// columnValues extracts a named column as cells
func columnValues(t *testing.T, d *dataset.Dataset, name string) []dataset.Cell {
	t.Helper()
	idx, ok := d.ColumnIndex(name)
	require.True(t, ok, "column %q not found", name)
	return d.ColumnCells(idx)
}

func num(v float64) dataset.Cell { return dataset.Number(v) }
func txt(s string) dataset.Cell  { return dataset.Text(s) }
func null() dataset.Cell         { return dataset.Null() }

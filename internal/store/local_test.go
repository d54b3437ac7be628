package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etlcli/internal/dataset"
	"etlcli/internal/errors"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
}

// writeDataset writes d into a temp dir through a LocalHandler with a
// pinned clock and returns the generated file path.
func writeDataset(t *testing.T, format Format, d *dataset.Dataset) string {
	t.Helper()
	dir := t.TempDir()

	h := NewLocalHandler(format, "cleaned", nil)
	h.now = fixedClock
	require.NoError(t, h.Write(context.Background(), d, dir))

	path := filepath.Join(dir, "cleaned_15-03-2024_10-30-00."+format.String())
	require.FileExists(t, path)
	return path
}

func sampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	d := dataset.New([]dataset.Column{
		{Name: "id", Kind: dataset.KindInteger},
		{Name: "score", Kind: dataset.KindFloat},
		{Name: "city", Kind: dataset.KindCategorical},
	})
	rows := [][]dataset.Cell{
		{dataset.Number(1), dataset.Number(9.5), dataset.Text("Basra")},
		{dataset.Number(2), dataset.Null(), dataset.Text("Erbil")},
		{dataset.Number(3), dataset.Number(7), dataset.Null()},
	}
	for _, row := range rows {
		require.NoError(t, d.AppendRow(row))
	}
	return d
}

func assertSampleDataset(t *testing.T, d *dataset.Dataset) {
	t.Helper()
	require.Equal(t, []string{"id", "score", "city"}, d.ColumnNames())
	require.Equal(t, 3, d.NumRows())

	assert.True(t, d.Cell(0, 0).Equal(dataset.Number(1)))
	assert.True(t, d.Cell(0, 1).Equal(dataset.Number(9.5)))
	assert.True(t, d.Cell(1, 1).IsNull())
	assert.True(t, d.Cell(2, 1).Equal(dataset.Number(7)))
	assert.True(t, d.Cell(1, 2).Equal(dataset.Text("Erbil")))
	assert.True(t, d.Cell(2, 2).IsNull())
}

func TestCSVRoundTrip(t *testing.T) {
	path := writeDataset(t, FormatCSV, sampleDataset(t))

	h := NewLocalHandler(FormatCSV, "cleaned", nil)
	got, err := h.Read(context.Background(), path)
	require.NoError(t, err)

	assertSampleDataset(t, got)
	cols := got.Columns()
	assert.Equal(t, dataset.KindInteger, cols[0].Kind)
	assert.Equal(t, dataset.KindFloat, cols[1].Kind)
	assert.Equal(t, dataset.KindCategorical, cols[2].Kind)
}

func TestJSONRoundTrip(t *testing.T) {
	path := writeDataset(t, FormatJSON, sampleDataset(t))

	h := NewLocalHandler(FormatJSON, "cleaned", nil)
	got, err := h.Read(context.Background(), path)
	require.NoError(t, err)

	assertSampleDataset(t, got)
}

func TestXLSXRoundTrip(t *testing.T) {
	path := writeDataset(t, FormatXLSX, sampleDataset(t))

	h := NewLocalHandler(FormatXLSX, "cleaned", nil)
	got, err := h.Read(context.Background(), path)
	require.NoError(t, err)

	assertSampleDataset(t, got)
}

func TestParquetRoundTrip(t *testing.T) {
	// Parquet schemas order fields by name, so the sample columns are
	// already alphabetical here.
	d := dataset.New([]dataset.Column{
		{Name: "city", Kind: dataset.KindCategorical},
		{Name: "id", Kind: dataset.KindInteger},
		{Name: "score", Kind: dataset.KindFloat},
	})
	require.NoError(t, d.AppendRow([]dataset.Cell{dataset.Text("Basra"), dataset.Number(1), dataset.Number(9.5)}))
	require.NoError(t, d.AppendRow([]dataset.Cell{dataset.Null(), dataset.Number(2), dataset.Null()}))

	path := writeDataset(t, FormatParquet, d)

	h := NewLocalHandler(FormatParquet, "cleaned", nil)
	got, err := h.Read(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, []string{"city", "id", "score"}, got.ColumnNames())
	require.Equal(t, 2, got.NumRows())
	assert.True(t, got.Cell(0, 0).Equal(dataset.Text("Basra")))
	assert.True(t, got.Cell(0, 2).Equal(dataset.Number(9.5)))
	assert.True(t, got.Cell(1, 0).IsNull())
	assert.True(t, got.Cell(1, 2).IsNull())
	assert.True(t, got.Cell(1, 1).Equal(dataset.Number(2)))
}

func TestCSVReadDecodesLatin1(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.csv")
	// "Málaga" with á as the single ISO-8859-1 byte 0xE1.
	raw := append([]byte("city\nM"), 0xE1)
	raw = append(raw, []byte("laga\n")...)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	h := NewLocalHandler(FormatCSV, "cleaned", nil)
	got, err := h.Read(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, 1, got.NumRows())
	assert.True(t, got.Cell(0, 0).Equal(dataset.Text("Málaga")))
}

func TestCSVReadTreatsNonFiniteAsMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gaps.csv")
	data := "v,w\n1,a\nNaN,NaN\n3,-Inf\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	h := NewLocalHandler(FormatCSV, "cleaned", nil)
	got, err := h.Read(context.Background(), path)
	require.NoError(t, err)

	// Non-finite tokens are missing values, not numbers, so v stays an
	// integer column with a gap where the NaN was.
	cols := got.Columns()
	assert.Equal(t, dataset.KindInteger, cols[0].Kind)
	assert.Equal(t, dataset.KindCategorical, cols[1].Kind)
	assert.True(t, got.Cell(0, 0).Equal(dataset.Number(1)))
	assert.True(t, got.Cell(1, 0).IsNull())
	assert.True(t, got.Cell(2, 0).Equal(dataset.Number(3)))
	assert.True(t, got.Cell(1, 1).IsNull())
	assert.True(t, got.Cell(2, 1).IsNull())
}

func TestJSONReadColumnOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.json")
	data := `[{"zeta":1,"alpha":"x"},{"zeta":2,"alpha":"y","extra":true,"before":false}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	h := NewLocalHandler(FormatJSON, "cleaned", nil)
	got, err := h.Read(context.Background(), path)
	require.NoError(t, err)

	// First object's key order wins; later-only keys follow, sorted.
	assert.Equal(t, []string{"zeta", "alpha", "before", "extra"}, got.ColumnNames())
	assert.True(t, got.Cell(0, 2).IsNull())
	assert.True(t, got.Cell(1, 3).Equal(dataset.Text("true")))
}

func TestReadUnsupportedExtension(t *testing.T) {
	h := NewLocalHandler(FormatCSV, "cleaned", nil)
	_, err := h.Read(context.Background(), "data.txt")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeFormat))
}

func TestReadMissingFile(t *testing.T) {
	h := NewLocalHandler(FormatCSV, "cleaned", nil)
	_, err := h.Read(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
}

func TestWriteCreatesDestinationDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")

	h := NewLocalHandler(FormatCSV, "cleaned", nil)
	h.now = fixedClock
	require.NoError(t, h.Write(context.Background(), sampleDataset(t), dir))

	require.FileExists(t, filepath.Join(dir, "cleaned_15-03-2024_10-30-00.csv"))
}

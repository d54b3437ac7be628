package store

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"etlcli/internal/dataset"
)

// readParquet loads a parquet file with a flat schema. Column order
// follows the file's schema; unsupported physical types are read as
// text.
func readParquet(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := pf.Schema().Fields()
	columns := make([]dataset.Column, len(fields))
	for i, field := range fields {
		if !field.Leaf() {
			return nil, fmt.Errorf("column %q is nested; only flat schemas are supported", field.Name())
		}
		columns[i] = dataset.Column{Name: field.Name(), Kind: parquetKind(field.Type().Kind())}
	}

	d := dataset.New(columns)
	for _, rowGroup := range pf.RowGroups() {
		if err := readRowGroup(d, rowGroup, len(fields)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// readRowGroup appends every row of one row group to the dataset
func readRowGroup(d *dataset.Dataset, rowGroup parquet.RowGroup, numColumns int) error {
	rows := rowGroup.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, 64)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			cells := make([]dataset.Cell, numColumns)
			for _, value := range row {
				c := int(value.Column())
				if c < 0 || c >= numColumns || value.IsNull() {
					continue
				}
				cells[c] = parquetCell(value)
			}
			if appendErr := d.AppendRow(cells); appendErr != nil {
				return appendErr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read parquet rows: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}

// parquetKind maps a parquet physical type to a column kind
func parquetKind(kind parquet.Kind) dataset.Kind {
	switch kind {
	case parquet.Int32, parquet.Int64:
		return dataset.KindInteger
	case parquet.Float, parquet.Double:
		return dataset.KindFloat
	default:
		return dataset.KindCategorical
	}
}

// parquetCell converts one parquet value to a cell
func parquetCell(v parquet.Value) dataset.Cell {
	switch v.Kind() {
	case parquet.Int32:
		return dataset.Number(float64(v.Int32()))
	case parquet.Int64:
		return dataset.Number(float64(v.Int64()))
	case parquet.Float:
		return dataset.Number(float64(v.Float()))
	case parquet.Double:
		return dataset.Number(v.Double())
	case parquet.Boolean:
		if v.Boolean() {
			return dataset.Text("true")
		}
		return dataset.Text("false")
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return dataset.Text(string(v.ByteArray()))
	default:
		return dataset.Text(v.String())
	}
}

// writeParquet stores the dataset as a parquet file. Numeric columns are
// written as optional doubles, categorical columns as optional strings.
func writeParquet(path string, d *dataset.Dataset) error {
	group := parquet.Group{}
	for _, col := range d.Columns() {
		if col.Kind.IsNumeric() {
			group[col.Name] = parquet.Optional(parquet.Leaf(parquet.DoubleType))
		} else {
			group[col.Name] = parquet.Optional(parquet.String())
		}
	}
	schema := parquet.NewSchema("dataset", group)

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := parquet.NewGenericWriter[map[string]any](f, schema)

	rows := make([]map[string]any, d.NumRows())
	columns := d.Columns()
	for r := 0; r < d.NumRows(); r++ {
		row := make(map[string]any, len(columns))
		for c, col := range columns {
			cell := d.Cell(r, c)
			if cell.IsNull() {
				continue
			}
			// Mixed-kind columns are categorical; their numeric cells
			// are rendered as text to match the string schema node.
			if v, ok := cell.Float(); ok && col.Kind.IsNumeric() {
				row[col.Name] = v
			} else {
				row[col.Name] = cell.String()
			}
		}
		rows[r] = row
	}

	if _, err := writer.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return f.Close()
}

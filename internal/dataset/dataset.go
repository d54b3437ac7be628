package dataset

import (
	"fmt"
)

// Kind classifies the values a column holds
type Kind int

const (
	// KindUnknown marks a column whose kind has not been declared;
	// Classify resolves it from the cell values.
	KindUnknown Kind = iota
	KindInteger
	KindFloat
	KindCategorical
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether the kind supports ordering and arithmetic
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindFloat
}

// Column describes one named column and its declared or inferred kind
type Column struct {
	Name string
	Kind Kind
}

// Dataset is ordered tabular data: a fixed set of named columns and a
// sequence of rows of cells.
type Dataset struct {
	columns []Column
	rows    [][]Cell
}

// New creates an empty dataset over the given columns
func New(columns []Column) *Dataset {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Dataset{columns: cols}
}

// AppendRow adds a row to the dataset. The row must have exactly one
// cell per column.
func (d *Dataset) AppendRow(cells []Cell) error {
	if len(cells) != len(d.columns) {
		return fmt.Errorf("row has %d cells, dataset has %d columns", len(cells), len(d.columns))
	}
	row := make([]Cell, len(cells))
	copy(row, cells)
	d.rows = append(d.rows, row)
	return nil
}

// NumRows returns the number of rows
func (d *Dataset) NumRows() int {
	return len(d.rows)
}

// NumColumns returns the number of columns
func (d *Dataset) NumColumns() int {
	return len(d.columns)
}

// Columns returns a copy of the column descriptors in order
func (d *Dataset) Columns() []Column {
	cols := make([]Column, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// ColumnNames returns the column names in order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name
	}
	return names
}

// ColumnIndex returns the position of the named column
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, col := range d.columns {
		if col.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the cell at the given row and column
func (d *Dataset) Cell(row, col int) Cell {
	return d.rows[row][col]
}

// SetCell replaces the cell at the given row and column
func (d *Dataset) SetCell(row, col int, c Cell) {
	d.rows[row][col] = c
}

// ColumnCells returns a copy of all cells in the given column, in row order
func (d *Dataset) ColumnCells(col int) []Cell {
	cells := make([]Cell, len(d.rows))
	for i, row := range d.rows {
		cells[i] = row[col]
	}
	return cells
}

// Row returns the cells of one row. The returned slice is the backing
// storage; callers must not modify it.
func (d *Dataset) Row(i int) []Cell {
	return d.rows[i]
}

// ReplaceRows swaps the dataset's rows for the given ones. Used by the
// duplicate remover, which is the only stage allowed to change the row
// count.
func (d *Dataset) ReplaceRows(rows [][]Cell) {
	d.rows = rows
}

// DropColumns removes the named columns and their cells. Names not
// present are ignored. Used by the correlation pruner, which is the only
// stage allowed to change the column set.
func (d *Dataset) DropColumns(names []string) {
	if len(names) == 0 {
		return
	}
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}

	keep := make([]int, 0, len(d.columns))
	var cols []Column
	for i, col := range d.columns {
		if !drop[col.Name] {
			keep = append(keep, i)
			cols = append(cols, col)
		}
	}
	if len(keep) == len(d.columns) {
		return
	}

	for r, row := range d.rows {
		next := make([]Cell, len(keep))
		for j, i := range keep {
			next[j] = row[i]
		}
		d.rows[r] = next
	}
	d.columns = cols
}

// SetColumnKind overrides the declared kind of the column at the given index
func (d *Dataset) SetColumnKind(col int, kind Kind) {
	d.columns[col].Kind = kind
}

// Clone returns a deep copy of the dataset
func (d *Dataset) Clone() *Dataset {
	out := New(d.columns)
	out.rows = make([][]Cell, len(d.rows))
	for i, row := range d.rows {
		next := make([]Cell, len(row))
		copy(next, row)
		out.rows[i] = next
	}
	return out
}

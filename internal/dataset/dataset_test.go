package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Cell
		expected bool
	}{
		{
			name:     "missing equals missing",
			a:        Null(),
			b:        Null(),
			expected: true,
		},
		{
			name:     "missing differs from zero",
			a:        Null(),
			b:        Number(0),
			expected: false,
		},
		{
			name:     "equal numbers",
			a:        Number(1.5),
			b:        Number(1.5),
			expected: true,
		},
		{
			name:     "different numbers",
			a:        Number(1.5),
			b:        Number(2.5),
			expected: false,
		},
		{
			name:     "equal text",
			a:        Text("a"),
			b:        Text("a"),
			expected: true,
		},
		{
			name:     "number differs from its text rendering",
			a:        Number(1),
			b:        Text("1"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
			assert.Equal(t, tt.expected, tt.b.Equal(tt.a))
		})
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		expected string
	}{
		{name: "missing renders empty", cell: Null(), expected: ""},
		{name: "integral number without decimal point", cell: Number(42), expected: "42"},
		{name: "fractional number", cell: Number(1.25), expected: "1.25"},
		{name: "text verbatim", cell: Text("hello"), expected: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cell.String())
		})
	}
}

func TestAppendRowArity(t *testing.T) {
	d := New([]Column{{Name: "a"}, {Name: "b"}})

	require.NoError(t, d.AppendRow([]Cell{Number(1), Text("x")}))
	err := d.AppendRow([]Cell{Number(1)})
	require.Error(t, err)
	assert.Equal(t, 1, d.NumRows())
}

func TestDropColumns(t *testing.T) {
	d := New([]Column{{Name: "a"}, {Name: "b"}, {Name: "c"}})
	require.NoError(t, d.AppendRow([]Cell{Number(1), Number(2), Number(3)}))
	require.NoError(t, d.AppendRow([]Cell{Number(4), Number(5), Number(6)}))

	d.DropColumns([]string{"b", "missing"})

	assert.Equal(t, []string{"a", "c"}, d.ColumnNames())
	assert.Equal(t, 2, d.NumRows())
	assert.True(t, d.Cell(0, 1).Equal(Number(3)))
	assert.True(t, d.Cell(1, 0).Equal(Number(4)))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		columns     []Column
		rows        [][]Cell
		numeric     []string
		categorical []string
	}{
		{
			name:    "numeric and categorical split",
			columns: []Column{{Name: "age"}, {Name: "city"}},
			rows: [][]Cell{
				{Number(30), Text("berlin")},
				{Number(41), Text("madrid")},
			},
			numeric:     []string{"age"},
			categorical: []string{"city"},
		},
		{
			name:    "mixed values are categorical",
			columns: []Column{{Name: "id"}},
			rows: [][]Cell{
				{Number(1)},
				{Text("x")},
			},
			categorical: []string{"id"},
		},
		{
			name:    "missing values do not affect numeric classification",
			columns: []Column{{Name: "score"}},
			rows: [][]Cell{
				{Null()},
				{Number(2.5)},
			},
			numeric: []string{"score"},
		},
		{
			name:        "all-missing column defaults to categorical",
			columns:     []Column{{Name: "blank"}},
			rows:        [][]Cell{{Null()}, {Null()}},
			categorical: []string{"blank"},
		},
		{
			name:    "all-missing column trusts declared kind",
			columns: []Column{{Name: "blank", Kind: KindFloat}},
			rows:    [][]Cell{{Null()}, {Null()}},
			numeric: []string{"blank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.columns)
			for _, row := range tt.rows {
				require.NoError(t, d.AppendRow(row))
			}

			class := Classify(d)

			assert.Equal(t, tt.numeric, class.Numeric)
			assert.Equal(t, tt.categorical, class.Categorical)
		})
	}
}

func TestClassifyResolvesKinds(t *testing.T) {
	d := New([]Column{{Name: "count"}, {Name: "ratio"}, {Name: "label"}})
	require.NoError(t, d.AppendRow([]Cell{Number(1), Number(0.5), Text("a")}))
	require.NoError(t, d.AppendRow([]Cell{Number(2), Number(1.5), Text("b")}))

	Classify(d)

	cols := d.Columns()
	assert.Equal(t, KindInteger, cols[0].Kind)
	assert.Equal(t, KindFloat, cols[1].Kind)
	assert.Equal(t, KindCategorical, cols[2].Kind)
}

func TestClone(t *testing.T) {
	d := New([]Column{{Name: "a", Kind: KindInteger}})
	require.NoError(t, d.AppendRow([]Cell{Number(1)}))

	clone := d.Clone()
	clone.SetCell(0, 0, Number(99))

	assert.True(t, d.Cell(0, 0).Equal(Number(1)))
	assert.True(t, clone.Cell(0, 0).Equal(Number(99)))
}

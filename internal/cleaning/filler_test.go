package cleaning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etlcli/internal/dataset"
	"etlcli/internal/errors"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Strategy
		wantErr bool
	}{
		{name: "median", input: "median", want: StrategyMedian},
		{name: "mode", input: "mode", want: StrategyMode},
		{name: "unknown strategy", input: "mean", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMedianFill(t *testing.T) {
	d := buildDataset(t, []string{"v", "city"},
		[]dataset.Cell{num(1), txt("berlin")},
		[]dataset.Cell{null(), txt("madrid")},
		[]dataset.Cell{num(3), null()},
	)
	class := dataset.Classify(d)

	filler, err := NewMissingFiller("median", nil, testLogger())
	require.NoError(t, err)
	require.NoError(t, filler.Apply(context.Background(), d, class))

	// Median of {1, 3} is 2.
	assert.True(t, d.Cell(1, 0).Equal(num(2)))
	// Median targets only numeric columns; the categorical gap stays.
	assert.True(t, d.Cell(2, 1).IsNull())
}

func TestMedianFillPreservesMedian(t *testing.T) {
	d := buildDataset(t, []string{"v"},
		[]dataset.Cell{num(10)},
		[]dataset.Cell{num(20)},
		[]dataset.Cell{null()},
		[]dataset.Cell{num(30)},
	)
	class := dataset.Classify(d)

	filler, err := NewMissingFiller("median", nil, testLogger())
	require.NoError(t, err)
	require.NoError(t, filler.Apply(context.Background(), d, class))

	values := columnFloats(columnValues(t, d, "v"))
	require.Len(t, values, 4)
	median, ok := Median(values)
	require.True(t, ok)
	assert.InDelta(t, 20, median, 1e-9)
}

func TestModeFill(t *testing.T) {
	d := buildDataset(t, []string{"city", "v"},
		[]dataset.Cell{txt("berlin"), num(1)},
		[]dataset.Cell{txt("berlin"), null()},
		[]dataset.Cell{null(), num(3)},
	)
	class := dataset.Classify(d)

	filler, err := NewMissingFiller("mode", nil, testLogger())
	require.NoError(t, err)
	require.NoError(t, filler.Apply(context.Background(), d, class))

	assert.True(t, d.Cell(2, 0).Equal(txt("berlin")))
	// Mode targets only categorical columns; the numeric gap stays.
	assert.True(t, d.Cell(1, 1).IsNull())
}

func TestExplicitColumnsOverrideKind(t *testing.T) {
	// Mode requested explicitly for a numeric column is honored.
	d := buildDataset(t, []string{"v"},
		[]dataset.Cell{num(7)},
		[]dataset.Cell{num(7)},
		[]dataset.Cell{num(1)},
		[]dataset.Cell{null()},
	)
	class := dataset.Classify(d)

	filler, err := NewMissingFiller("mode", []string{"v"}, testLogger())
	require.NoError(t, err)
	require.NoError(t, filler.Apply(context.Background(), d, class))

	assert.True(t, d.Cell(3, 0).Equal(num(7)))
}

func TestFillAllMissingColumnSkipped(t *testing.T) {
	d := buildDataset(t, []string{"x", "v"},
		[]dataset.Cell{null(), num(1)},
		[]dataset.Cell{null(), null()},
	)
	d.SetColumnKind(0, dataset.KindFloat)
	class := dataset.Classify(d)

	filler, err := NewMissingFiller("median", nil, testLogger())
	require.NoError(t, err)
	require.NoError(t, filler.Apply(context.Background(), d, class))

	// x stays unfilled, the other column is still processed.
	assert.True(t, d.Cell(0, 0).IsNull())
	assert.True(t, d.Cell(1, 0).IsNull())
	assert.True(t, d.Cell(1, 1).Equal(num(1)))
}

func TestFillUnknownColumnSkipped(t *testing.T) {
	d := buildDataset(t, []string{"v"},
		[]dataset.Cell{num(1)},
		[]dataset.Cell{null()},
	)
	class := dataset.Classify(d)

	filler, err := NewMissingFiller("median", []string{"ghost", "v"}, testLogger())
	require.NoError(t, err)
	require.NoError(t, filler.Apply(context.Background(), d, class))

	assert.True(t, d.Cell(1, 0).Equal(num(1)))
}

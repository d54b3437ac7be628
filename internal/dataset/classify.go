package dataset

import "math"

// Classification partitions the dataset's columns into the numeric and
// categorical sets. The two sets are disjoint and together cover every
// column.
type Classification struct {
	Numeric     []string
	Categorical []string
}

// IsNumeric reports whether the named column is in the numeric set
func (c Classification) IsNumeric(name string) bool {
	for _, n := range c.Numeric {
		if n == name {
			return true
		}
	}
	return false
}

// Classify partitions columns into numeric and categorical sets based on
// their cell values: a column is numeric when every non-missing cell
// holds a number. A column whose cells are all missing falls back to its
// declared kind, or categorical when no kind was declared. Classify also
// resolves KindUnknown column kinds in place.
func Classify(d *Dataset) Classification {
	var class Classification
	for i, col := range d.Columns() {
		if classifyColumn(d, i, col) {
			class.Numeric = append(class.Numeric, col.Name)
		} else {
			class.Categorical = append(class.Categorical, col.Name)
		}
	}
	return class
}

func classifyColumn(d *Dataset, idx int, col Column) bool {
	numeric := true
	integral := true
	seen := 0
	for r := 0; r < d.NumRows(); r++ {
		cell := d.Cell(r, idx)
		if cell.IsNull() {
			continue
		}
		seen++
		v, ok := cell.Float()
		if !ok {
			numeric = false
			break
		}
		if v != math.Trunc(v) {
			integral = false
		}
	}

	if seen == 0 {
		// All-missing column: trust the declared kind, default categorical.
		if col.Kind == KindUnknown {
			d.SetColumnKind(idx, KindCategorical)
		}
		return d.Columns()[idx].Kind.IsNumeric()
	}

	if col.Kind == KindUnknown {
		switch {
		case numeric && integral:
			d.SetColumnKind(idx, KindInteger)
		case numeric:
			d.SetColumnKind(idx, KindFloat)
		default:
			d.SetColumnKind(idx, KindCategorical)
		}
	}
	return numeric
}

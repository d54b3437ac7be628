package dataset

import (
	"math"
	"strconv"
)

// Cell holds a single nullable tabular value: missing, a number, or text.
// The zero value is a missing cell.
type Cell struct {
	valid   bool
	numeric bool
	number  float64
	text    string
}

// Null returns a missing cell
func Null() Cell {
	return Cell{}
}

// Number returns a numeric cell
func Number(v float64) Cell {
	return Cell{valid: true, numeric: true, number: v}
}

// Text returns a text cell
func Text(s string) Cell {
	return Cell{valid: true, text: s}
}

// IsNull reports whether the cell is missing
func (c Cell) IsNull() bool {
	return !c.valid
}

// IsNumeric reports whether the cell holds a number
func (c Cell) IsNumeric() bool {
	return c.valid && c.numeric
}

// Float returns the numeric value and whether the cell holds one
func (c Cell) Float() (float64, bool) {
	if !c.valid || !c.numeric {
		return 0, false
	}
	return c.number, true
}

// String returns the cell rendered for display and export. Missing cells
// render as the empty string; integral numbers render without a decimal
// point.
func (c Cell) String() string {
	switch {
	case !c.valid:
		return ""
	case c.numeric:
		if c.number == math.Trunc(c.number) && !math.IsInf(c.number, 0) {
			return strconv.FormatInt(int64(c.number), 10)
		}
		return strconv.FormatFloat(c.number, 'f', -1, 64)
	default:
		return c.text
	}
}

// Equal reports whether two cells compare equal. Missing compares equal
// to missing; numbers compare by value; text compares by string.
func (c Cell) Equal(o Cell) bool {
	if !c.valid || !o.valid {
		return c.valid == o.valid
	}
	if c.numeric != o.numeric {
		return false
	}
	if c.numeric {
		return c.number == o.number
	}
	return c.text == o.text
}

package cleaning

import (
	"math"
	"sort"

	"etlcli/internal/dataset"
)

// Quantile estimates the value at probability p in [0, 1] using linear
// interpolation between order statistics. The input does not need to be
// sorted. Returns false when values is empty.
func Quantile(values []float64, p float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0], true
	}
	if p >= 1 {
		return sorted[len(sorted)-1], true
	}

	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], true
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), true
}

// Median returns the 0.5 quantile. Returns false when values is empty.
func Median(values []float64) (float64, bool) {
	return Quantile(values, 0.5)
}

// Mode returns the most frequent non-missing cell, breaking ties in
// favor of the first-encountered value. Returns false when every cell is
// missing.
func Mode(cells []dataset.Cell) (dataset.Cell, bool) {
	counts := make(map[dataset.Cell]int)
	var best dataset.Cell
	bestCount := 0
	for _, cell := range cells {
		if cell.IsNull() {
			continue
		}
		counts[cell]++
		if counts[cell] > bestCount {
			best = cell
			bestCount = counts[cell]
		}
	}
	if bestCount == 0 {
		return dataset.Null(), false
	}
	return best, true
}

// Pearson computes the Pearson correlation coefficient between two
// columns of cells, considering only rows where both values are present.
// Returns NaN when fewer than two complete pairs exist or either side
// has zero variance.
func Pearson(x, y []dataset.Cell) float64 {
	var xs, ys []float64
	for i := range x {
		xv, xok := x[i].Float()
		yv, yok := y[i].Float()
		if xok && yok {
			xs = append(xs, xv)
			ys = append(ys, yv)
		}
	}
	n := float64(len(xs))
	if len(xs) < 2 {
		return math.NaN()
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

// columnFloats extracts the non-missing numeric values of a column
func columnFloats(cells []dataset.Cell) []float64 {
	var out []float64
	for _, cell := range cells {
		if v, ok := cell.Float(); ok {
			out = append(out, v)
		}
	}
	return out
}

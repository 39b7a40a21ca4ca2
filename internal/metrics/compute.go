package metrics

import (
	"math"
	"sort"
)

// Summary holds descriptive statistics of one column.
type Summary struct {
	Count  int
	Mean   float64
	Stddev float64 // sample standard deviation
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// Describe computes descriptive statistics, skipping NaN and Inf values.
// An empty input returns a zero Summary.
func Describe(values []float64) Summary {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	n := len(finite)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, finite)
	sort.Float64s(sorted)

	mean := computeMean(finite)
	return Summary{
		Count:  n,
		Mean:   mean,
		Stddev: computeStddev(finite, mean),
		Min:    sorted[0],
		P25:    computePercentile(sorted, 0.25),
		Median: computePercentile(sorted, 0.50),
		P75:    computePercentile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// Pearson returns the correlation coefficient of x and y.
// Returns NaN when lengths differ, fewer than two pairs exist, or either
// series has zero variance.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < 2 {
		return math.NaN()
	}

	var sx, sy, sxx, syy, sxy float64
	for i := 0; i < n; i++ {
		sx += x[i]
		sy += y[i]
		sxx += x[i] * x[i]
		syy += y[i] * y[i]
		sxy += x[i] * y[i]
	}

	fn := float64(n)
	num := fn*sxy - sx*sy
	den := math.Sqrt(fn*sxx-sx*sx) * math.Sqrt(fn*syy-sy*sy)
	if den == 0 || math.IsNaN(den) {
		return math.NaN()
	}
	return num / den
}

// computeMean calculates arithmetic mean.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// computePercentile uses linear interpolation.
// sorted must be pre-sorted ASC.
// p is percentile (0.25 = 25th percentile).
func computePercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Correlation is the Pearson correlation of x and y. It is 0 when either
// sample is constant or the lengths differ.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// NormalizedEntropy is the Shannon entropy of a histogram divided by its
// maximum, in [0,1]. 0 means every count is in one bin.
func NormalizedEntropy(counts []int64) float64 {
	if len(counts) < 2 {
		return 0
	}
	var total int64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = float64(c) / float64(total)
	}
	return stat.Entropy(p) / math.Log(float64(len(counts)))
}

package services

import (
	"math"
	"sort"
)

// pearson computes the correlation coefficient between two equal-length
// series using the two-pass formula. Returns 0 when either series has zero
// variance or the lengths differ.
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0
	}
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// rollingMean computes the trailing window mean of a series. Positions with
// fewer than window prior values are omitted, so the result has
// len(values)-window+1 entries (empty when the series is shorter than the
// window).
func rollingMean(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	out := make([]float64, 0, len(values)-window+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// maxByValue picks the key with the largest value, breaking ties by taking
// the lexicographically smallest key so selection is deterministic.
func maxByValue(m map[string]float64) (string, float64, bool) {
	if len(m) == 0 {
		return "", 0, false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := keys[0]
	for _, k := range keys[1:] {
		if m[k] > m[best] {
			best = k
		}
	}
	return best, m[best], true
}

// minByValue is the dual of maxByValue, with the same tie-break.
func minByValue(m map[string]float64) (string, float64, bool) {
	if len(m) == 0 {
		return "", 0, false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := keys[0]
	for _, k := range keys[1:] {
		if m[k] < m[best] {
			best = k
		}
	}
	return best, m[best], true
}

// clampRatio divides value by target and caps the result at 1.0. Non-positive
// targets yield 0.
func clampRatio(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	ratio := value / target
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Package stats provides the moment and autocorrelation primitives behind the
// ratio family. All moment functions omit missing (NaN) observations and
// return NaN when too few observations remain.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DropNaN returns the non-NaN values of xs in order.
func DropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean returns the arithmetic mean over non-missing observations.
func Mean(xs []float64) float64 {
	valid := DropNaN(xs)
	if len(valid) == 0 {
		return math.NaN()
	}
	return stat.Mean(valid, nil)
}

// SampleStd returns the unbiased (n-1) sample standard deviation over
// non-missing observations.
func SampleStd(xs []float64) float64 {
	valid := DropNaN(xs)
	if len(valid) < 2 {
		return math.NaN()
	}
	return stat.StdDev(valid, nil)
}

// Skew returns the bias-corrected sample skewness over non-missing
// observations, matching the standard unbiased estimator.
func Skew(xs []float64) float64 {
	valid := DropNaN(xs)
	if len(valid) < 3 {
		return math.NaN()
	}
	return stat.Skew(valid, nil)
}

// ExcessKurtosis returns the bias-corrected sample excess kurtosis over
// non-missing observations. A normal distribution scores 0.
func ExcessKurtosis(xs []float64) float64 {
	valid := DropNaN(xs)
	if len(valid) < 4 {
		return math.NaN()
	}
	return stat.ExKurtosis(valid, nil)
}

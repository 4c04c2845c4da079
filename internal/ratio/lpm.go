package ratio

import (
	"math"

	"github.com/wonny/riskstats/internal/series"
)

// lpmKernel averages max(target-r, 0)^moment over non-missing observations.
// All-missing input is undefined (NaN) and propagates.
func lpmKernel(xs []float64, target float64, moment int) float64 {
	var sum float64
	var n int
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		d := target - v
		if d < 0 {
			d = 0
		}
		sum += math.Pow(d, float64(moment))
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// LPM computes the generalized lower partial moment of a return series
// relative to a target return: the mean over non-missing observations of the
// moment-th power of the shortfall below target.
//
// The result is non-negative, and exactly 0 iff no observation falls below
// target — downstream ratios use that as their degenerate-denominator signal.
func LPM(d series.Data, target float64, moment int) (series.Result, error) {
	if moment < 1 {
		return nil, ErrMoment
	}
	return apply(d, func(xs []float64) float64 {
		return lpmKernel(xs, target, moment)
	}), nil
}

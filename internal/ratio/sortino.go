package ratio

import (
	"math"

	"github.com/wonny/riskstats/internal/returns"
	"github.com/wonny/riskstats/internal/series"
	"github.com/wonny/riskstats/internal/stats"
)

// sortinoKernel computes mean(r-target) / sqrt(LPM(r, target, 2)) on a
// log-normalized series.
func sortinoKernel(xs []float64, target float64, rt ReturnType) float64 {
	r := xs
	if rt == Pct {
		r = returns.PctToLog(xs)
	}
	num := stats.Mean(excess(r, target))
	return num / math.Sqrt(lpmKernel(r, target, 2))
}

// Sortino computes the Sortino ratio via the lower-partial-moment primitive:
// factor * mean(r-target) / sqrt(LPM(r, target, 2)). It agrees with
// SortinoDirect to floating tolerance.
func Sortino(d series.Data, target, factor float64, rt ReturnType) (series.Result, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	res := apply(d, func(xs []float64) float64 {
		return sortinoKernel(xs, target, rt)
	})
	for k, v := range res {
		res[k] = factor * v
	}
	return res, nil
}

// SortinoDirect computes the Sortino ratio from the explicit downside
// semi-deviation: returns below the benchmark are squared and averaged over
// the full observation count, everything at or above contributes zero.
func SortinoDirect(d series.Data, bench, factor float64, rt ReturnType) (series.Result, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	res := apply(d, func(xs []float64) float64 {
		var ex []float64
		if rt == Pct {
			ex = returns.PctToLog(excess(xs, bench))
		} else {
			ex = excess(xs, bench)
		}

		var sumSq float64
		for _, v := range ex {
			if !math.IsNaN(v) && v < 0 {
				sumSq += v * v
			}
		}
		semiStd := math.Sqrt(sumSq / float64(len(ex)))

		return stats.Mean(ex) / semiStd
	})
	for k, v := range res {
		res[k] = factor * v
	}
	return res, nil
}

package ratio

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/wonny/riskstats/internal/returns"
	"github.com/wonny/riskstats/internal/series"
	"github.com/wonny/riskstats/internal/stats"
)

// kappaKernel computes mean(excess) / LPM^(1/moment). Percentage input is
// log-normalized after the target is subtracted; the lower partial moment is
// taken on the raw series, matching the reference convention.
func kappaKernel(xs []float64, target float64, moment int, rt ReturnType) float64 {
	var ex []float64
	if rt == Pct {
		ex = returns.PctToLog(excess(xs, target))
	} else {
		ex = excess(xs, target)
	}
	mean := stats.Mean(ex)
	return mean / math.Pow(lpmKernel(xs, target, moment), 1/float64(moment))
}

// Kappa computes the generalized Kappa-N ratio, mean(r-t) / LPM(r,t,n)^(1/n).
// Sortino is Kappa-2 with a square root; Omega is 1 + Kappa-1.
func Kappa(d series.Data, target float64, moment int, rt ReturnType) (series.Result, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	if moment < 1 {
		return nil, ErrMoment
	}
	return apply(d, func(xs []float64) float64 {
		return kappaKernel(xs, target, moment, rt)
	}), nil
}

// Kappa3 is the third-order Kappa ratio.
func Kappa3(d series.Data, target float64, rt ReturnType) (series.Result, error) {
	return Kappa(d, target, 3, rt)
}

// Omega computes the Omega ratio relative to a target return,
// 1 + Kappa(r, t, 1).
func Omega(d series.Data, target float64, rt ReturnType) (series.Result, error) {
	res, err := Kappa(d, target, 1, rt)
	if err != nil {
		return nil, err
	}
	for k, v := range res {
		res[k] = 1 + v
	}
	return res, nil
}

// EmpiricalCDF holds the diagnostic comparison behind the empirical Omega: the
// empirical distribution of a return series against a normal distribution with
// matched sample mean and standard deviation, evaluated on a shared grid.
type EmpiricalCDF struct {
	Grid      []float64
	Empirical []float64
	Normal    []float64
}

// OmegaEmpirical builds the empirical CDF of a return series and a matched
// normal CDF over a linearly spaced grid of steps points spanning
// [min(returns), max(returns)]. It is a visual/diagnostic aid, not a scalar
// ratio. Missing observations are omitted.
func OmegaEmpirical(s series.Series, rt ReturnType, steps int) (EmpiricalCDF, error) {
	if err := rt.Validate(); err != nil {
		return EmpiricalCDF{}, err
	}
	if steps < 2 {
		return EmpiricalCDF{}, ErrSteps
	}

	xs := s.Values
	if rt == Pct {
		xs = returns.PctToLog(xs)
	}
	valid := stats.DropNaN(xs)
	if len(valid) < 2 {
		return EmpiricalCDF{}, fmt.Errorf("empirical omega needs at least 2 non-missing observations, got %d", len(valid))
	}
	sort.Float64s(valid)

	lo, hi := valid[0], valid[len(valid)-1]
	step := (hi - lo) / float64(steps-1)

	norm := distuv.Normal{
		Mu:    stat.Mean(valid, nil),
		Sigma: stat.StdDev(valid, nil),
	}

	out := EmpiricalCDF{
		Grid:      make([]float64, steps),
		Empirical: make([]float64, steps),
		Normal:    make([]float64, steps),
	}
	for i := 0; i < steps; i++ {
		x := lo + float64(i)*step
		if i == steps-1 {
			x = hi
		}
		out.Grid[i] = x
		out.Empirical[i] = stat.CDF(x, stat.Empirical, valid, nil)
		out.Normal[i] = norm.CDF(x)
	}
	return out, nil
}

package ratio

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/riskstats/internal/returns"
	"github.com/wonny/riskstats/internal/series"
	"github.com/wonny/riskstats/internal/stats"
)

// sharpeKernel computes mean(excess) / std(excess, n-1) with no time
// aggregation. Zero standard deviation yields a signed infinity or NaN
// depending on the numerator, which is deliberately caller-visible.
func sharpeKernel(xs []float64, bench float64, rt ReturnType) float64 {
	ex := excess(xs, bench)
	if rt == Pct {
		ex = returns.PctToLog(ex)
	}
	return stats.Mean(ex) / stats.SampleStd(ex)
}

// Sharpe computes the i.i.d. Sharpe ratio,
// factor * mean(r-bench) / std(r-bench, n-1).
func Sharpe(d series.Data, bench, factor float64, rt ReturnType) (series.Result, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	res := apply(d, func(xs []float64) float64 {
		return sharpeKernel(xs, bench, rt)
	})
	for k, v := range res {
		res[k] = factor * v
	}
	return res, nil
}

// SharpeRolling evaluates the i.i.d. Sharpe ratio over a sliding window of
// fixed size. The first window-1 outputs of each column are missing
// (insufficient history), never zero.
func SharpeRolling(d series.Data, window int, bench, factor float64, rt ReturnType) (series.Frame, error) {
	if err := rt.Validate(); err != nil {
		return series.Frame{}, err
	}
	if window < 2 {
		return series.Frame{}, ErrWindow
	}

	cols := d.Columns()
	out := make([]series.Series, len(cols))
	for i, c := range cols {
		ex := excess(c.Values, bench)
		if rt == Pct {
			ex = returns.PctToLog(ex)
		}
		s := series.New(c.Name, ex)
		mean := s.RollingMean(window)
		std := s.RollingStd(window)

		vals := make([]float64, len(ex))
		for j := range vals {
			vals[j] = factor * mean.Values[j] / std.Values[j]
		}
		out[i] = series.New(c.Name, vals)
	}
	return series.NewFrame(out...)
}

// SharpeAdjusted computes the Pezier-White distribution-adjusted Sharpe
// ratio: the raw (factor=1) Sharpe ratio is corrected for the sample skew and
// excess kurtosis of the input series, and only the final result is scaled by
// the aggregation factor.
func SharpeAdjusted(d series.Data, bench, factor float64, rt ReturnType) (series.Result, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	res := apply(d, func(xs []float64) float64 {
		sr := sharpeKernel(xs, bench, rt)
		skew := stats.Skew(xs)
		exKurt := stats.ExcessKurtosis(xs)
		return AdjustedSharpe(sr, skew, exKurt) * factor
	})
	return res, nil
}

// AdjustedSharpe applies the Pezier-White (2006) correction for non-normal
// return distributions to a raw Sharpe ratio:
//
//	sr * (1 + (skew/6)*sr + (excessKurtosis/24)*sr²)
//
// NaN inputs propagate; there are no failure modes.
func AdjustedSharpe(sr, skew, excessKurtosis float64) float64 {
	return sr * (1 + skew/6*sr + excessKurtosis/24*sr*sr)
}

// loFactor computes the Lo (2002) time-aggregation factor from a sample ACF:
//
//	q / sqrt(q + 2 * Σ_{k=0}^{q-2} (q-(k+1)) * acf[k+1])
//
// i.e. a variance-ratio correction weighting each autocorrelation lag by its
// contribution to the q-period aggregated variance. acf must cover lags
// 0..q-1 at least.
func loFactor(acf []float64, q int) float64 {
	var sum float64
	for k := 0; k <= q-2; k++ {
		sum += float64(q-(k+1)) * acf[k+1]
	}
	return float64(q) / math.Sqrt(float64(q)+2*sum)
}

// autocorrFactor computes the Lo adjustment factor and the Ljung-Box p-value
// for a single column. Missing observations are dropped first; the ACF runs
// out to lag q and the p-value is taken at lag q-1, the second-to-last entry
// of the lag-1..q test table.
func autocorrFactor(xs []float64, q int) (factor, pval float64, err error) {
	valid := stats.DropNaN(xs)
	if len(valid) <= q {
		return 0, 0, fmt.Errorf("horizon q=%d requires more than %d non-missing observations", q, len(valid))
	}

	acf := stats.ACF(valid, q)
	_, p, err := stats.LjungBox(valid, q)
	if err != nil {
		return 0, 0, err
	}

	return loFactor(acf, q), p[q-2], nil
}

// SharpeAutocorrAdjusted computes the Sharpe ratio with the time-aggregation
// factor adjusted for serial correlation, after Andrew Lo (2002).
//
// Per column: if the Ljung-Box test rejects the no-autocorrelation null at
// pCritical, the raw Sharpe ratio is scaled by the Lo factor; otherwise by the
// naive sqrt(q). q is the aggregation horizon (e.g. 252 for daily to annual)
// and is rounded to the nearest integer before use.
func SharpeAutocorrAdjusted(d series.Data, bench, q, pCritical float64, rt ReturnType) (series.Result, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	qi := int(math.Round(q))
	if qi < 2 {
		return nil, ErrHorizon
	}

	cols := d.Columns()
	vals := make([]float64, len(cols))

	g := new(errgroup.Group)
	for i, c := range cols {
		i, c := i, c
		g.Go(func() error {
			sr := sharpeKernel(c.Values, bench, rt)

			factor, pval, err := autocorrFactor(c.Values, qi)
			if err != nil {
				return fmt.Errorf("column %q: %w", c.Name, err)
			}

			if pval < pCritical {
				// reject the null: the series is serially correlated
				vals[i] = sr * factor
			} else {
				vals[i] = sr * math.Sqrt(float64(qi))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make(series.Result, len(cols))
	for i, c := range cols {
		res[c.Name] = vals[i]
	}
	return res, nil
}

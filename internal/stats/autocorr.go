package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ACF computes the sample autocorrelation function out to nlags. The result
// has nlags+1 entries with acf[0] == 1. The estimator divides every lag by
// the lag-0 sum of squares (the standard biased estimator). Lags at or beyond
// the series length are NaN.
func ACF(xs []float64, nlags int) []float64 {
	n := len(xs)
	acf := make([]float64, nlags+1)
	if n == 0 {
		for i := range acf {
			acf[i] = math.NaN()
		}
		return acf
	}

	mean := Mean(xs)
	var denom float64
	for _, v := range xs {
		d := v - mean
		denom += d * d
	}

	acf[0] = 1
	for k := 1; k <= nlags; k++ {
		if k >= n || denom == 0 {
			acf[k] = math.NaN()
			continue
		}
		var num float64
		for t := k; t < n; t++ {
			num += (xs[t] - mean) * (xs[t-k] - mean)
		}
		acf[k] = num / denom
	}
	return acf
}

// LjungBox runs the Ljung-Box portmanteau test for absence of autocorrelation.
// It returns the Q statistic and its p-value for every lag 1..lags, so
// q[m-1] and p[m-1] test "no autocorrelation up to lag m". The null is
// independence; a small p-value rejects it.
//
// Q_m = n(n+2) * Σ_{k=1}^{m} ρ_k² / (n-k), p_m = P(χ²_m > Q_m).
func LjungBox(xs []float64, lags int) (q, p []float64, err error) {
	n := len(xs)
	if lags < 1 {
		return nil, nil, fmt.Errorf("ljung-box lags must be >= 1, got %d", lags)
	}
	if lags >= n {
		return nil, nil, fmt.Errorf("ljung-box lags %d requires a series longer than %d observations", lags, n)
	}

	acf := ACF(xs, lags)
	q = make([]float64, lags)
	p = make([]float64, lags)

	var sum float64
	for m := 1; m <= lags; m++ {
		rho := acf[m]
		sum += rho * rho / float64(n-m)
		q[m-1] = float64(n) * float64(n+2) * sum

		chi2 := distuv.ChiSquared{K: float64(m)}
		p[m-1] = chi2.Survival(q[m-1])
	}
	return q, p, nil
}

// Package ratio builds the Sharpe, Sortino, Omega and Kappa family of
// risk-adjusted performance ratios on top of the lower-partial-moment
// primitive.
//
// Every ratio accepts either a single series or a columnar frame through
// series.Data and computes independently per column. Inputs declared as
// percentage returns are normalized to log-return space before any mean is
// taken, matching the convention that arithmetic means of log returns
// approximate geometric compounding.
//
// Degenerate denominators (zero standard deviation, zero LPM) propagate as
// ±Inf or NaN rather than being masked: a degenerate ratio is itself
// informative.
package ratio

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/riskstats/internal/series"
)

// ReturnType declares the unit of a return series. It is fixed for the
// series' lifetime; mixing units silently produces wrong results, so every
// public entry point validates it before any numeric work.
type ReturnType string

const (
	// Pct marks arithmetic percentage returns (+0.05 = +5%).
	Pct ReturnType = "pct"
	// Log marks continuously compounded returns.
	Log ReturnType = "log"
)

// Configuration errors, detected synchronously before computation and never
// silently defaulted.
var (
	ErrReturnType = errors.New(`return type must be one of "pct", "log"`)
	ErrMoment     = errors.New("moment order must be >= 1")
	ErrWindow     = errors.New("rolling window must be >= 2")
	ErrHorizon    = errors.New("aggregation horizon q must be >= 2")
	ErrSteps      = errors.New("grid steps must be >= 2")
)

// Validate checks the return type tag.
func (rt ReturnType) Validate() error {
	switch rt {
	case Pct, Log:
		return nil
	default:
		return fmt.Errorf("%w, got %q", ErrReturnType, string(rt))
	}
}

// apply evaluates a pure per-column kernel over all columns. Columns are
// independent slices, so they are evaluated concurrently.
func apply(d series.Data, fn func(xs []float64) float64) series.Result {
	cols := d.Columns()
	vals := make([]float64, len(cols))

	g := new(errgroup.Group)
	for i, c := range cols {
		i, c := i, c
		g.Go(func() error {
			vals[i] = fn(c.Values)
			return nil
		})
	}
	_ = g.Wait()

	res := make(series.Result, len(cols))
	for i, c := range cols {
		res[c.Name] = vals[i]
	}
	return res
}

// excess subtracts a benchmark elementwise, preserving missing values.
func excess(xs []float64, bench float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = v - bench
	}
	return out
}

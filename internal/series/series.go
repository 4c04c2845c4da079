// Package series provides the return-series containers shared by every
// statistic in this module.
//
// Missing-value policy (applies module-wide):
//   - math.NaN() marks a missing observation inside a Series.
//   - Moment computations (mean, std, skew, kurtosis, LPM) omit missing
//     observations and average over the non-missing count.
//   - Return-type transforms treat a missing percentage return as 0 before
//     converting, i.e. a gap contributes no change in log space.
//   - Rolling windows do not omit: a window containing a missing value
//     produces a missing result.
package series

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/riskstats/internal/stats"
)

// Series is a single named column of observations, one per period.
type Series struct {
	Name   string
	Values []float64
}

// New creates a named series.
func New(name string, values []float64) Series {
	return Series{Name: name, Values: values}
}

// Len returns the number of periods.
func (s Series) Len() int {
	return len(s.Values)
}

// Columns returns the series as a single-column view.
func (s Series) Columns() []Series {
	return []Series{s}
}

// Mean returns the mean over non-missing observations.
func (s Series) Mean() float64 {
	return stats.Mean(s.Values)
}

// Std returns the unbiased (n-1) sample standard deviation over non-missing
// observations.
func (s Series) Std() float64 {
	return stats.SampleStd(s.Values)
}

// Skew returns the bias-corrected sample skewness over non-missing
// observations.
func (s Series) Skew() float64 {
	return stats.Skew(s.Values)
}

// ExcessKurtosis returns the bias-corrected sample excess kurtosis (normal
// distribution = 0) over non-missing observations.
func (s Series) ExcessKurtosis() float64 {
	return stats.ExcessKurtosis(s.Values)
}

// Dropna returns the non-missing observations in order.
func (s Series) Dropna() []float64 {
	return stats.DropNaN(s.Values)
}

// Map applies fn elementwise and returns a new series with the same name.
func (s Series) Map(fn func(float64) float64) Series {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = fn(v)
	}
	return Series{Name: s.Name, Values: out}
}

// Rolling applies fn over a sliding window of fixed size. The first window-1
// outputs are missing (insufficient history), never zero. fn sees the raw
// window including any missing values.
func (s Series) Rolling(window int, fn func(win []float64) float64) Series {
	out := make([]float64, len(s.Values))
	for i := range out {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = fn(s.Values[i-window+1 : i+1])
	}
	return Series{Name: s.Name, Values: out}
}

// RollingMean is the sliding-window arithmetic mean. A window containing a
// missing value yields a missing result.
func (s Series) RollingMean(window int) Series {
	return s.Rolling(window, func(win []float64) float64 {
		return stat.Mean(win, nil)
	})
}

// RollingStd is the sliding-window unbiased sample standard deviation.
func (s Series) RollingStd(window int) Series {
	return s.Rolling(window, func(win []float64) float64 {
		return stat.StdDev(win, nil)
	})
}

// Frame is an ordered collection of equal-length series sharing one index,
// e.g. daily returns of multiple strategies.
type Frame struct {
	cols []Series
}

// NewFrame creates a frame from equal-length columns.
func NewFrame(cols ...Series) (Frame, error) {
	if len(cols) == 0 {
		return Frame{}, fmt.Errorf("frame requires at least one column")
	}
	n := cols[0].Len()
	for _, c := range cols[1:] {
		if c.Len() != n {
			return Frame{}, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), n)
		}
	}
	out := make([]Series, len(cols))
	copy(out, cols)
	return Frame{cols: out}, nil
}

// Len returns the number of periods.
func (f Frame) Len() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// Columns returns the columns in order.
func (f Frame) Columns() []Series {
	return f.cols
}

// Column looks up a column by name.
func (f Frame) Column(name string) (Series, bool) {
	for _, c := range f.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Series{}, false
}

// Data is the common view over a single series and a columnar frame. Every
// ratio accepts Data and computes independently per column.
type Data interface {
	Len() int
	Columns() []Series
}

// Result maps column name to a scalar statistic. Single-series input produces
// a one-entry result.
type Result map[string]float64

// Scalar returns the value for single-series input. It is NaN when the result
// holds more or fewer than one column.
func (r Result) Scalar() float64 {
	if len(r) != 1 {
		return math.NaN()
	}
	for _, v := range r {
		return v
	}
	return math.NaN()
}

// Value looks up a column's statistic.
func (r Result) Value(name string) (float64, bool) {
	v, ok := r[name]
	return v, ok
}

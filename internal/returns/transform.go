// Package returns converts between percentage and logarithmic return
// representations and annualizes total returns.
package returns

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// DomainError reports a percentage return at or below total loss, where the
// log transform is undefined.
type DomainError struct {
	Index int
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("percentage return %g at index %d is <= -100%%: log transform undefined", e.Value, e.Index)
}

// PctToLog converts percentage returns to log returns, ln(1+r) elementwise.
// A missing observation is treated as 0 before the transform, so a gap
// contributes no change in log space.
//
// The transform is undefined for 1+r <= 0. By policy it does not fail there:
// the underlying log produces -Inf or NaN, which contaminates downstream
// means unless the caller guards with CheckPctDomain first.
func PctToLog(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		if math.IsNaN(v) {
			v = 0
		}
		out[i] = math.Log1p(v)
	}
	return out
}

// LogToPct converts log returns to percentage returns, exp(r)-1 elementwise.
// It is the exact inverse of PctToLog on the admissible domain.
func LogToPct(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = math.Expm1(v)
	}
	return out
}

// CheckPctDomain returns a *DomainError for the first percentage return with
// 1+r <= 0, for callers that want to fail fast instead of propagating NaN.
// Missing observations are admissible (they transform to 0).
func CheckPctDomain(xs []float64) error {
	for i, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		if 1+v <= 0 {
			return &DomainError{Index: i, Value: v}
		}
	}
	return nil
}

// FromPrices computes log returns from a price series, ln(p[t]/p[t-lag]).
// The first lag outputs are 0 (no prior observation).
func FromPrices(prices []float64, lag int) ([]float64, error) {
	if lag < 1 {
		return nil, fmt.Errorf("lag must be >= 1, got %d", lag)
	}
	out := make([]float64, len(prices))
	for t := range prices {
		if t < lag {
			out[t] = 0
			continue
		}
		out[t] = math.Log(prices[t] / prices[t-lag])
	}
	return out, nil
}

// GeometricMean returns the geometric average return, gmean(1+r)-1, with
// missing observations treated as 0.
func GeometricMean(xs []float64) float64 {
	growth := make([]float64, len(xs))
	for i, v := range xs {
		if math.IsNaN(v) {
			v = 0
		}
		growth[i] = 1 + v
	}
	return stat.GeometricMean(growth, nil) - 1
}

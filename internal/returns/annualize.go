package returns

import (
	"errors"
	"math"
)

// ErrNonPositiveDays is returned when an annualization is requested over a
// non-positive horizon. The division is undefined there and must fail
// explicitly rather than return infinity silently.
var ErrNonPositiveDays = errors.New("days must be positive")

// AnnualizedPct converts a total growth multiple over days into an annualized
// percentage return: totalReturn^(annFactor/days) - 1.
//
// totalReturn is a growth multiple (1.0 = flat, 1.5 = +50%), not a delta.
func AnnualizedPct(totalReturn, days, annFactor float64) (float64, error) {
	if days <= 0 {
		return 0, ErrNonPositiveDays
	}
	years := days / annFactor
	return math.Pow(totalReturn, 1/years) - 1, nil
}

// AnnualizedLog converts a total log return over days into an annualized log
// return by linear scaling, since log returns compound additively.
func AnnualizedLog(totalLogReturn, days, annFactor float64) (float64, error) {
	if days <= 0 {
		return 0, ErrNonPositiveDays
	}
	years := days / annFactor
	return totalLogReturn / years, nil
}

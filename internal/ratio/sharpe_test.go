package ratio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/riskstats/internal/series"
	"github.com/wonny/riskstats/internal/stats"
)

// Annual return fixture used across the Sharpe tests.
var sharpeData = []float64{0.259, 0.198, 0.364, -0.081, 0.057, 0.055, 0.188, 0.317, 0.24, 0.184, -0.01, 0.526}

func TestSharpe_LogReturns(t *testing.T) {
	res, err := Sharpe(series.New("r", sharpeData), 0.05, 1, Log)
	require.NoError(t, err)
	assert.InDelta(t, 0.834364, res.Scalar(), 1e-6)
}

func TestSharpe_PctReturns(t *testing.T) {
	res, err := Sharpe(series.New("r", sharpeData), 0.05, 1, Pct)
	require.NoError(t, err)
	assert.InDelta(t, 0.8189144744629443, res.Scalar(), 1e-9)
}

func TestSharpe_FrameMatchesSeries(t *testing.T) {
	// the ratio must be identical whether the input is a bare series or a
	// labeled column in a frame
	a := series.New("a", sharpeData)
	b := series.New("b", []float64{0.17, 0.15, 0.23, -0.05, 0.12, 0.09, 0.13, -0.04, 0.02, 0.07, -0.01, 0.11})
	frame, err := series.NewFrame(a, b)
	require.NoError(t, err)

	res, err := Sharpe(frame, 0.05, 1, Log)
	require.NoError(t, err)
	require.Len(t, res, 2)

	single, err := Sharpe(a, 0.05, 1, Log)
	require.NoError(t, err)
	assert.Equal(t, single.Scalar(), res["a"])

	singleB, err := Sharpe(b, 0.05, 1, Log)
	require.NoError(t, err)
	assert.Equal(t, singleB.Scalar(), res["b"])
}

func TestSharpe_InvalidReturnType(t *testing.T) {
	_, err := Sharpe(series.New("r", sharpeData), 0, 1, ReturnType("geometric"))
	assert.ErrorIs(t, err, ErrReturnType)
}

func TestSharpe_ZeroVariancePropagates(t *testing.T) {
	// a constant series has zero sample deviation: the degenerate ratio is
	// caller-visible, not masked
	res, err := Sharpe(series.New("flat", []float64{0.01, 0.01, 0.01, 0.01}), 0, 1, Log)
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.Scalar(), 1))
}

func TestSharpe_Factor(t *testing.T) {
	raw, err := Sharpe(series.New("r", sharpeData), 0.05, 1, Log)
	require.NoError(t, err)

	ann, err := Sharpe(series.New("r", sharpeData), 0.05, math.Sqrt(12), Log)
	require.NoError(t, err)

	assert.InDelta(t, raw.Scalar()*math.Sqrt(12), ann.Scalar(), 1e-12)
}

func TestSharpeRolling(t *testing.T) {
	const window = 6
	frame, err := SharpeRolling(series.New("r", sharpeData), window, 0.05, 1, Log)
	require.NoError(t, err)

	col, ok := frame.Column("r")
	require.True(t, ok)
	require.Equal(t, len(sharpeData), col.Len())

	// the first window-1 outputs are missing, never zero
	for i := 0; i < window-1; i++ {
		assert.True(t, math.IsNaN(col.Values[i]), "index %d", i)
	}

	// each window agrees with the point-in-time Sharpe of its own slice
	for i := window - 1; i < len(sharpeData); i++ {
		win := series.New("w", sharpeData[i-window+1:i+1])
		want, err := Sharpe(win, 0.05, 1, Log)
		require.NoError(t, err)
		assert.InDelta(t, want.Scalar(), col.Values[i], 1e-12, "index %d", i)
	}
}

func TestSharpeRolling_WindowValidation(t *testing.T) {
	_, err := SharpeRolling(series.New("r", sharpeData), 1, 0, 1, Log)
	assert.ErrorIs(t, err, ErrWindow)

	_, err = SharpeRolling(series.New("r", sharpeData), 6, 0, 1, ReturnType("bad"))
	assert.ErrorIs(t, err, ErrReturnType)
}

func TestAdjustedSharpe(t *testing.T) {
	// normal distribution: no correction
	assert.Equal(t, 0.834364, AdjustedSharpe(0.834364, 0, 0))

	// sr * (1 + skew/6*sr + exkurt/24*sr^2)
	assert.InDelta(t, 1.125, AdjustedSharpe(1, 0.5, 1), 1e-12)

	assert.True(t, math.IsNaN(AdjustedSharpe(math.NaN(), 0.5, 1)))
}

func TestSharpeAdjusted(t *testing.T) {
	s := series.New("r", sharpeData)
	factor := math.Sqrt(12)

	res, err := SharpeAdjusted(s, 0.05, factor, Log)
	require.NoError(t, err)

	// the correction applies to the raw ratio; only the result is scaled
	raw, err := Sharpe(s, 0.05, 1, Log)
	require.NoError(t, err)
	want := AdjustedSharpe(raw.Scalar(), stats.Skew(sharpeData), stats.ExcessKurtosis(sharpeData)) * factor
	assert.InDelta(t, want, res.Scalar(), 1e-12)
}

func TestLoFactor(t *testing.T) {
	// q=3 with acf[1]=0.5, acf[2]=0.25:
	// sum = 2*0.5 + 1*0.25 = 1.25, factor = 3/sqrt(3+2.5)
	got := loFactor([]float64{1, 0.5, 0.25, 0.1}, 3)
	assert.InDelta(t, 3/math.Sqrt(5.5), got, 1e-12)

	// no autocorrelation collapses to the naive sqrt(q) scaling
	got = loFactor([]float64{1, 0, 0, 0}, 4)
	assert.InDelta(t, math.Sqrt(4), got, 1e-12)
}

// autocorrData is a deterministic serially dependent fixture, long enough for
// a lag-6 Ljung-Box table.
func autocorrData() []float64 {
	xs := make([]float64, 48)
	for i := range xs {
		xs[i] = 0.01*math.Sin(float64(i)/3) + 0.002
	}
	return xs
}

func TestAutocorrFactor(t *testing.T) {
	const q = 6
	xs := autocorrData()

	factor, pval, err := autocorrFactor(xs, q)
	require.NoError(t, err)

	assert.InDelta(t, loFactor(stats.ACF(xs, q), q), factor, 1e-12)

	// p-value convention: lag q-1, the second-to-last entry of the table
	_, p, err := stats.LjungBox(xs, q)
	require.NoError(t, err)
	assert.Equal(t, p[q-2], pval)
}

func TestSharpeAutocorrAdjusted_DecisionRule(t *testing.T) {
	s := series.New("r", autocorrData())
	const q = 6.0

	raw, err := Sharpe(s, 0, 1, Log)
	require.NoError(t, err)

	// pCritical=1: every p-value rejects the null, the Lo factor applies
	res, err := SharpeAutocorrAdjusted(s, 0, q, 1, Log)
	require.NoError(t, err)
	factor, _, err := autocorrFactor(s.Values, int(q))
	require.NoError(t, err)
	assert.InDelta(t, raw.Scalar()*factor, res.Scalar(), 1e-12)

	// pCritical=0: the null is never rejected, naive sqrt(q) scaling applies
	res, err = SharpeAutocorrAdjusted(s, 0, q, 0, Log)
	require.NoError(t, err)
	assert.InDelta(t, raw.Scalar()*math.Sqrt(q), res.Scalar(), 1e-12)
}

func TestSharpeAutocorrAdjusted_RoundsHorizon(t *testing.T) {
	s := series.New("r", autocorrData())

	exact, err := SharpeAutocorrAdjusted(s, 0, 6, 0.05, Log)
	require.NoError(t, err)

	rounded, err := SharpeAutocorrAdjusted(s, 0, 6.4, 0.05, Log)
	require.NoError(t, err)

	assert.Equal(t, exact.Scalar(), rounded.Scalar())
}

func TestSharpeAutocorrAdjusted_PerColumn(t *testing.T) {
	a := series.New("a", autocorrData())

	bVals := make([]float64, 48)
	for i := range bVals {
		bVals[i] = 0.02*math.Cos(float64(i)/2) - 0.001
	}
	b := series.New("b", bVals)

	frame, err := series.NewFrame(a, b)
	require.NoError(t, err)

	res, err := SharpeAutocorrAdjusted(frame, 0, 6, 0.05, Log)
	require.NoError(t, err)
	require.Len(t, res, 2)

	// each column gets its own ACF, test and decision
	wantA, err := SharpeAutocorrAdjusted(a, 0, 6, 0.05, Log)
	require.NoError(t, err)
	wantB, err := SharpeAutocorrAdjusted(b, 0, 6, 0.05, Log)
	require.NoError(t, err)

	assert.Equal(t, wantA.Scalar(), res["a"])
	assert.Equal(t, wantB.Scalar(), res["b"])
}

func TestSharpeAutocorrAdjusted_Validation(t *testing.T) {
	s := series.New("r", autocorrData())

	_, err := SharpeAutocorrAdjusted(s, 0, 1, 0.05, Log)
	assert.ErrorIs(t, err, ErrHorizon)

	_, err = SharpeAutocorrAdjusted(s, 0, 6, 0.05, ReturnType("bad"))
	assert.ErrorIs(t, err, ErrReturnType)

	// horizon longer than the series cannot be tested
	short := series.New("short", []float64{0.01, 0.02, -0.01})
	_, err = SharpeAutocorrAdjusted(short, 0, 6, 0.05, Log)
	assert.Error(t, err)
}

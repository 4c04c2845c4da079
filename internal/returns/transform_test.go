package returns

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPctToLog_RoundTrip(t *testing.T) {
	pct := []float64{0.259, 0.198, 0.364, -0.081, 0.057, -0.01, 0.526}

	back := LogToPct(PctToLog(pct))

	require.Len(t, back, len(pct))
	for i := range pct {
		assert.InDelta(t, pct[i], back[i], 1e-12, "index %d", i)
	}
}

func TestLogToPct_RoundTrip(t *testing.T) {
	logr := []float64{0.1, -0.2, 0.05, 0}

	back := PctToLog(LogToPct(logr))

	for i := range logr {
		assert.InDelta(t, logr[i], back[i], 1e-12, "index %d", i)
	}
}

func TestPctToLog_MissingContributesNoChange(t *testing.T) {
	out := PctToLog([]float64{0.1, math.NaN(), -0.05})

	assert.InDelta(t, math.Log1p(0.1), out[0], 1e-15)
	assert.Equal(t, 0.0, out[1])
	assert.InDelta(t, math.Log1p(-0.05), out[2], 1e-15)
}

func TestPctToLog_DomainBoundaryPropagates(t *testing.T) {
	out := PctToLog([]float64{-1, -1.5})

	assert.True(t, math.IsInf(out[0], -1))
	assert.True(t, math.IsNaN(out[1]))
}

func TestCheckPctDomain(t *testing.T) {
	assert.NoError(t, CheckPctDomain([]float64{0.5, -0.99, math.NaN()}))

	err := CheckPctDomain([]float64{0.5, -1.0})
	require.Error(t, err)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 1, domainErr.Index)
	assert.Equal(t, -1.0, domainErr.Value)
}

func TestFromPrices(t *testing.T) {
	prices := []float64{100, 110, 121}

	out, err := FromPrices(prices, 1)
	require.NoError(t, err)

	assert.Equal(t, 0.0, out[0])
	assert.InDelta(t, math.Log(1.1), out[1], 1e-12)
	assert.InDelta(t, math.Log(1.1), out[2], 1e-12)
}

func TestFromPrices_Reconstruct(t *testing.T) {
	prices := []float64{50, 52.5, 49.8, 53.1, 60.2, 58.9}

	logr, err := FromPrices(prices, 1)
	require.NoError(t, err)

	// cumulative log returns rebuild the price path from the first price
	cum := 0.0
	for i, r := range logr {
		cum += r
		assert.InDelta(t, prices[i], prices[0]*math.Exp(cum), 1e-9, "index %d", i)
	}
}

func TestFromPrices_Lag(t *testing.T) {
	prices := []float64{100, 110, 121, 133.1}

	out, err := FromPrices(prices, 2)
	require.NoError(t, err)

	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 0.0, out[1])
	assert.InDelta(t, math.Log(1.21), out[2], 1e-12)
	assert.InDelta(t, math.Log(1.21), out[3], 1e-12)

	_, err = FromPrices(prices, 0)
	assert.Error(t, err)
}

func TestGeometricMean(t *testing.T) {
	assert.InDelta(t, 0.1, GeometricMean([]float64{0.1, 0.1}), 1e-12)

	// missing treated as flat
	assert.InDelta(t, 0.1, GeometricMean([]float64{0.21, math.NaN()}), 1e-12)
}

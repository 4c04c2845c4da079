// Package report aggregates the ratio battery into a single performance
// summary for one return series. It is a pure consumer of the core
// statistics; nothing here fetches or persists data.
package report

import (
	"fmt"
	"math"

	"github.com/wonny/riskstats/internal/ratio"
	"github.com/wonny/riskstats/internal/returns"
	"github.com/wonny/riskstats/internal/series"
	"github.com/wonny/riskstats/internal/stats"
	"github.com/wonny/riskstats/pkg/config"
	"github.com/wonny/riskstats/pkg/logger"
)

// Analyzer computes performance reports from aligned return series.
type Analyzer struct {
	cfg    config.StatsConfig
	logger *logger.Logger
}

// NewAnalyzer creates a new performance analyzer.
func NewAnalyzer(cfg config.StatsConfig, log *logger.Logger) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		logger: log,
	}
}

// Performance is the per-series summary.
type Performance struct {
	Name    string `json:"name"`
	Periods int    `json:"periods"`

	// Returns
	TotalReturn  float64 `json:"total_return"`
	AnnualReturn float64 `json:"annual_return"`

	// Risk-adjusted metrics
	Volatility  float64 `json:"volatility"`
	Sharpe      float64 `json:"sharpe"`
	Sortino     float64 `json:"sortino"`
	Omega       float64 `json:"omega"`
	MaxDrawdown float64 `json:"max_drawdown"`
}

// Analyze computes the performance summary for a single return series.
// The benchmark/target for the ratio family is 0.
func (a *Analyzer) Analyze(s series.Series, rt ratio.ReturnType) (*Performance, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("series %q is empty", s.Name)
	}

	perf := &Performance{Name: s.Name, Periods: s.Len()}

	// Percentage view for compounding, log view for moment statistics.
	pct := s.Values
	logr := s.Values
	if rt == ratio.Log {
		pct = returns.LogToPct(s.Values)
	} else {
		logr = returns.PctToLog(s.Values)
	}

	perf.TotalReturn = totalReturn(pct)

	annual, err := returns.AnnualizedPct(1+perf.TotalReturn, float64(s.Len()), float64(a.cfg.TradingDays))
	if err != nil {
		return nil, fmt.Errorf("annualize %q: %w", s.Name, err)
	}
	perf.AnnualReturn = annual

	factor := math.Sqrt(float64(a.cfg.TradingDays))
	perf.Volatility = stats.SampleStd(logr) * factor

	sharpe, err := ratio.Sharpe(s, 0, factor, rt)
	if err != nil {
		return nil, err
	}
	perf.Sharpe = sharpe.Scalar()

	sortino, err := ratio.Sortino(s, 0, factor, rt)
	if err != nil {
		return nil, err
	}
	perf.Sortino = sortino.Scalar()

	omega, err := ratio.Omega(s, 0, rt)
	if err != nil {
		return nil, err
	}
	perf.Omega = omega.Scalar()

	perf.MaxDrawdown = maxDrawdown(pct)

	a.logger.WithFields(map[string]interface{}{
		"series":       s.Name,
		"periods":      perf.Periods,
		"total_return": perf.TotalReturn,
		"sharpe":       perf.Sharpe,
		"max_drawdown": perf.MaxDrawdown,
	}).Info("Performance analysis completed")

	return perf, nil
}

// totalReturn compounds percentage returns into a cumulative return.
// Missing observations contribute no change.
func totalReturn(pct []float64) float64 {
	cum := 1.0
	for _, r := range pct {
		if math.IsNaN(r) {
			continue
		}
		cum *= 1.0 + r
	}
	return cum - 1.0
}

// maxDrawdown walks the compounded equity curve and returns the deepest
// peak-to-trough loss as a negative fraction.
func maxDrawdown(pct []float64) float64 {
	cum := 1.0
	peak := 1.0
	maxDD := 0.0

	for _, r := range pct {
		if math.IsNaN(r) {
			continue
		}
		cum *= 1.0 + r
		if cum > peak {
			peak = cum
		}
		dd := (cum - peak) / peak
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

package commands

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/riskstats/internal/ratio"
	"github.com/wonny/riskstats/internal/report"
	"github.com/wonny/riskstats/internal/returns"
	"github.com/wonny/riskstats/pkg/config"
	"github.com/wonny/riskstats/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute the ratio battery for a returns CSV",
	Long: `Reads an already-aligned return series (CSV, one column per series,
one row per period, optional header) and prints risk-adjusted performance
statistics per column.

Flags:
  --file       returns CSV (required)
  --type       return unit: log | pct (default log)
  --benchmark  benchmark return per period for Sharpe (default 0)
  --target     target return per period for Sortino/Omega/Kappa (default 0)
  --q          aggregation horizon for the autocorrelation-adjusted Sharpe
               (default: TRADING_DAYS from config)
  --days       calendar days the series spans; adds a calendar-basis
               annualized return (ANNUAL_DAYS per year)

Example:
  go run ./cmd/riskstats analyze --file returns.csv --type log
  go run ./cmd/riskstats analyze --file returns.csv --type pct --target 0.01`,
	RunE: runAnalyze,
}

var (
	analyzeFile      string
	analyzeType      string
	analyzeBenchmark float64
	analyzeTarget    float64
	analyzeQ         float64
	analyzeDays      float64
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "returns CSV file (required)")
	analyzeCmd.Flags().StringVar(&analyzeType, "type", "log", "return unit (log|pct)")
	analyzeCmd.Flags().Float64Var(&analyzeBenchmark, "benchmark", 0, "benchmark return per period")
	analyzeCmd.Flags().Float64Var(&analyzeTarget, "target", 0, "target return per period")
	analyzeCmd.Flags().Float64Var(&analyzeQ, "q", 0, "aggregation horizon (default: TRADING_DAYS)")
	analyzeCmd.Flags().Float64Var(&analyzeDays, "days", 0, "calendar days spanned, for calendar-basis annualization")

	analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	rt := ratio.ReturnType(analyzeType)
	if err := rt.Validate(); err != nil {
		return err
	}

	q := analyzeQ
	if q == 0 {
		q = float64(cfg.Stats.TradingDays)
	}

	f, err := os.Open(analyzeFile)
	if err != nil {
		return fmt.Errorf("failed to open returns file: %w", err)
	}
	defer f.Close()

	frame, err := parseReturnsFrame(f)
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"file":    analyzeFile,
		"columns": len(frame.Columns()),
		"periods": frame.Len(),
		"type":    analyzeType,
	}).Info("Analyzing return series")

	factor := math.Sqrt(float64(cfg.Stats.TradingDays))

	sharpe, err := ratio.Sharpe(frame, analyzeBenchmark, factor, rt)
	if err != nil {
		return err
	}
	adjusted, err := ratio.SharpeAdjusted(frame, analyzeBenchmark, factor, rt)
	if err != nil {
		return err
	}
	autocorr, err := ratio.SharpeAutocorrAdjusted(frame, analyzeBenchmark, q, cfg.Stats.PCritical, rt)
	if err != nil {
		log.WithError(err).Warn("Autocorrelation-adjusted Sharpe unavailable")
		autocorr = nil
	}
	sortino, err := ratio.Sortino(frame, analyzeTarget, factor, rt)
	if err != nil {
		return err
	}
	omega, err := ratio.Omega(frame, analyzeTarget, rt)
	if err != nil {
		return err
	}
	kappa3, err := ratio.Kappa3(frame, analyzeTarget, rt)
	if err != nil {
		return err
	}

	// Point-in-time Sharpe over the configured trailing window, when enough
	// history exists.
	var rollingLast map[string]float64
	if frame.Len() >= cfg.Stats.Window {
		rolling, err := ratio.SharpeRolling(frame, cfg.Stats.Window, analyzeBenchmark, factor, rt)
		if err != nil {
			return err
		}
		rollingLast = make(map[string]float64, len(rolling.Columns()))
		for _, col := range rolling.Columns() {
			rollingLast[col.Name] = col.Values[col.Len()-1]
		}
	}

	fmt.Println("=== riskstats analyze ===")
	fmt.Printf("File: %s (%d columns x %d periods, %s returns)\n",
		analyzeFile, len(frame.Columns()), frame.Len(), analyzeType)
	fmt.Printf("Benchmark: %g  Target: %g  Horizon q: %g\n\n", analyzeBenchmark, analyzeTarget, q)

	analyzer := report.NewAnalyzer(cfg.Stats, log)

	for _, col := range frame.Columns() {
		fmt.Printf("--- %s ---\n", col.Name)
		fmt.Printf("  Sharpe (annualized):   %10.6f\n", sharpe[col.Name])
		fmt.Printf("  Sharpe (Pezier-White): %10.6f\n", adjusted[col.Name])
		if autocorr != nil {
			fmt.Printf("  Sharpe (Lo 2002):      %10.6f\n", autocorr[col.Name])
		}
		if rollingLast != nil {
			fmt.Printf("  Sharpe (trailing %3d): %10.6f\n", cfg.Stats.Window, rollingLast[col.Name])
		}
		fmt.Printf("  Sortino:               %10.6f\n", sortino[col.Name])
		fmt.Printf("  Omega:                 %10.6f\n", omega[col.Name])
		fmt.Printf("  Kappa-3:               %10.6f\n", kappa3[col.Name])

		perf, err := analyzer.Analyze(col, rt)
		if err != nil {
			return err
		}
		fmt.Printf("  Total return:          %10.4f%%\n", perf.TotalReturn*100)
		fmt.Printf("  Annual return:         %10.4f%%\n", perf.AnnualReturn*100)
		if analyzeDays > 0 {
			calAnnual, err := returns.AnnualizedPct(1+perf.TotalReturn, analyzeDays, cfg.Stats.AnnualDays)
			if err != nil {
				return err
			}
			fmt.Printf("  Annual (calendar):     %10.4f%%\n", calAnnual*100)
		}
		fmt.Printf("  Volatility:            %10.4f%%\n", perf.Volatility*100)
		fmt.Printf("  Max drawdown:          %10.4f%%\n", perf.MaxDrawdown*100)
		fmt.Println()
	}

	return nil
}

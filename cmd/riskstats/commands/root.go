package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "riskstats",
	Short: "Risk-adjusted performance statistics for return series",
	Long: `riskstats - risk-adjusted performance statistics

Computes Sharpe, Sortino, Omega and Kappa ratios from an aligned return
series, including the Pezier-White skew/kurtosis adjustment and the
Lo (2002) autocorrelation-adjusted time aggregation.

Usage:
  go run ./cmd/riskstats [command]

Examples:
  go run ./cmd/riskstats analyze --file returns.csv --type log
  go run ./cmd/riskstats analyze --file returns.csv --type pct --benchmark 0.0002`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

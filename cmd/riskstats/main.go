package main

import (
	"os"

	"github.com/wonny/riskstats/cmd/riskstats/commands"
)

// main is the entry point for the riskstats CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

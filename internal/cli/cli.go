// Package cli wires the collector and the synthetic generator into the
// roomres command line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roomres",
		Short: "Collect Olin Library room-reservation data",
		Long: `Collects room-reservation timestamp data from the Olin Library EMS
booking system and writes a canonical tabular dataset for statistical
analysis. A synthetic generator is included for testing the analysis
pipeline without touching the live system.`,
	}

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newSimulateCmd())

	return cmd
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

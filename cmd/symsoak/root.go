package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "symsoak",
	Short: "symsoak soak-tests the symcore expression engine",
	Long: `symsoak generates random expression trees, checks the algebraic
properties of the canonicalizer and differentiator against them, and
shrinks every failure into a minimal counterexample.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

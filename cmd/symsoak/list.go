package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wildfunctions/symcore/pkg/pool"
	"github.com/wildfunctions/symcore/pkg/property"
	"github.com/wildfunctions/symcore/pkg/strategy"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available pools, strategies and properties",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Pools:")
		for _, name := range pool.Names() {
			fmt.Fprintf(w, "  %s\n", name)
		}
		fmt.Fprintln(w, "Strategies:")
		for _, name := range strategy.Names() {
			fmt.Fprintf(w, "  %s\n", name)
		}
		fmt.Fprintln(w, "Properties:")
		for _, name := range property.Names() {
			p, _ := property.Get(name)
			fmt.Fprintf(w, "  %-20s %s\n", name, p.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

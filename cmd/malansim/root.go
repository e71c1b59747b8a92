package main

import (
	"github.com/spf13/cobra"
)

// rootCmd assembles the malansim command tree: sample, pedigree, theta.
func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "malansim",
		Short: "Simulate and query patrilineal pedigrees and haplotypes",
		Long: "malansim drives the malan package end to end: sample a genealogy, " +
			"assemble it into pedigrees, populate haplotypes, and run the " +
			"analytics/theta queries over the result.",
		SilenceUsage: true,
	}

	root.PersistentFlags().Uint64("seed", 1, "random seed for deterministic runs")

	root.AddCommand(sampleCmd())
	root.AddCommand(pedigreeCmd())
	root.AddCommand(thetaCmd())
	return root
}

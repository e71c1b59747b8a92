package main

import (
	"fmt"
	"io"

	"github.com/islandsomewhere/malan"
	"github.com/spf13/cobra"
)

func sampleCmd() *cobra.Command {
	var (
		population   int
		generations  int
		untilFounder bool
		variance     bool
		shape        float64
		scale        float64
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample a genealogy and print the resulting population summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetUint64("seed")
			rng := malan.NewRand(seed)

			gen := malan.FixedGenerations(generations)
			if untilFounder {
				gen = malan.UntilOneFounder()
			}

			var (
				sim *malan.Simulation
				err error
			)
			if variance {
				sim, err = malan.SampleGenealogyVariance(population, gen, shape, scale, verbose, generations, rng, malan.NeverCancel{})
			} else {
				sim, err = malan.SampleGenealogy(population, gen, verbose, rng, malan.NeverCancel{})
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s\n", sim.RunID)
			fmt.Fprintf(out, "population size: %d\n", sim.Population.Len())
			fmt.Fprintf(out, "generations completed: %d\n", sim.GenerationsCompleted)
			fmt.Fprintf(out, "founders left: %d\n", sim.FoundersLeft)

			if sim.VerboseTables != nil {
				printTable(out, "pid", sim.VerboseTables.PID)
				printTable(out, "father pid", sim.VerboseTables.FatherPID)
				printTable(out, "father slot", sim.VerboseTables.FatherSlot)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&population, "population", 4, "population size M")
	cmd.Flags().IntVar(&generations, "generations", 3, "number of generations to simulate")
	cmd.Flags().BoolVar(&untilFounder, "until-founder", false, "simulate until a single founder remains, ignoring --generations")
	cmd.Flags().BoolVar(&variance, "variance", false, "use the gamma-weighted paternal fitness sampler")
	cmd.Flags().Float64Var(&shape, "gamma-shape", 2, "gamma shape parameter for --variance")
	cmd.Flags().Float64Var(&scale, "gamma-scale", 1, "gamma scale parameter for --variance")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print the pid/father-pid/father-slot tables")
	return cmd
}

func printTable(out io.Writer, name string, t *malan.Table) {
	fmt.Fprintf(out, "%s table (%d x %d):\n", name, t.Rows(), t.Cols())
	for r := 0; r < t.Rows(); r++ {
		row := t.Row(r)
		fmt.Fprintf(out, "  %v\n", row)
	}
}

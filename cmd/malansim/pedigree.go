package main

import (
	"fmt"

	"github.com/islandsomewhere/malan"
	"github.com/spf13/cobra"
)

func pedigreeCmd() *cobra.Command {
	var (
		population   int
		generations  int
		mutationRate float64
		ladderFlag   LadderFlag
	)

	cmd := &cobra.Command{
		Use:   "pedigree",
		Short: "Sample a genealogy, build pedigrees, propagate Y-STR haplotypes, and report meiotic distances",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetUint64("seed")
			rng := malan.NewRand(seed)

			sim, err := malan.SampleGenealogy(population, malan.FixedGenerations(generations), false, rng, malan.NeverCancel{})
			if err != nil {
				return err
			}

			pedigrees, err := malan.BuildPedigrees(sim.Population, malan.NeverCancel{})
			if err != nil {
				return err
			}

			model := malan.MutationModel{Rates: []float64{mutationRate}}
			if l := ladderFlag.Get(); l != nil {
				model.Ladder = l
			}
			founder := malan.ZeroFounder(1)
			if err := malan.PopulateHaplotypesSTR(pedigrees, model, founder, true, rng, malan.NeverCancel{}); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pedigrees: %d\n", len(pedigrees))
			for _, ped := range pedigrees {
				root := sim.Population.At(ped.Root)
				fmt.Fprintf(out, "  pedigree %d: root pid=%d members=%d\n", ped.ID, root.PID, len(ped.Members))

				k := 3
				if k > len(ped.Members) {
					k = len(ped.Members)
				}
				fmt.Fprintf(out, "    most prolific fathers (pid): %v\n", malan.MostProlificFathers(ped, k))

				hist, err := malan.MeiosesGenerationDistribution(sim.Population, ped.Root, -1)
				if err != nil {
					return err
				}
				for _, row := range hist {
					fmt.Fprintf(out, "    generation=%d distance=%d count=%d\n", row.Generation, row.Distance, row.Count)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&population, "population", 4, "population size M")
	cmd.Flags().IntVar(&generations, "generations", 3, "number of generations to simulate")
	cmd.Flags().Float64Var(&mutationRate, "mutation-rate", 0.1, "per-locus stepwise mutation rate")
	cmd.Flags().Var(&ladderFlag, "ladder", "ladder bounds as min:max for the single locus (e.g. 0:20); founders start at allele 0")
	return cmd
}

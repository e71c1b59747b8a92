package main

import (
	"fmt"

	"github.com/islandsomewhere/malan"
	"github.com/spf13/cobra"
)

func thetaCmd() *cobra.Command {
	var (
		population   int
		generations  int
		alleles      int
		theta        float64
		mutationRate float64
	)

	cmd := &cobra.Command{
		Use:   "theta",
		Short: "Simulate 2-locus autosomal genotypes and estimate theta back from the sample",
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

			p := make([]float64, alleles)
			for i := range p {
				p[i] = 1 / float64(alleles)
			}
			model, err := malan.NewAutosomalModel(p, theta, mutationRate)
			if err != nil {
				return err
			}
			if err := malan.PopulateHaplotypesAutosomal(pedigrees, model, rng, malan.NeverCancel{}); err != nil {
				return err
			}

			var sample []int
			for i := 0; i < sim.Population.Len(); i++ {
				sample = append(sample, i)
			}
			result, err := malan.EstimateTheta1SubpopIndividuals(sim.Population, sample)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "true theta: %v\n", theta)
			fmt.Fprintf(out, "estimated theta: %v\n", result.Estimate)
			fmt.Fprintf(out, "error: %v\n", result.Error)
			fmt.Fprintf(out, "details: %s\n", result.Details)
			fmt.Fprintf(out, "unique genotypes observed: %d\n", result.UniqueGenotypes)
			return nil
		},
	}

	cmd.Flags().IntVar(&population, "population", 20, "population size M")
	cmd.Flags().IntVar(&generations, "generations", 3, "number of generations to simulate")
	cmd.Flags().IntVar(&alleles, "alleles", 4, "number of alleles in the uniform founder distribution")
	cmd.Flags().Float64Var(&theta, "theta", 0.05, "population-structure parameter to simulate with")
	cmd.Flags().Float64Var(&mutationRate, "mutation-rate", 0.01, "per-locus stepwise mutation rate")
	return cmd
}

package malan_test

import (
	"testing"

	"github.com/islandsomewhere/malan"
)

func TestMutateHaplotypeLadderBoundedForcedDirection(t *testing.T) {
	rng := malan.NewRand(1)
	model := malan.MutationModel{
		Rates:  []float64{1.0},
		Ladder: &malan.Ladder{Min: []int{5}, Max: []int{6}},
	}
	out, err := malan.MutateHaplotype(rng, []int{5}, model)
	if err != nil {
		t.Fatalf("MutateHaplotype() err = %v", err)
	}
	if out[0] != 6 {
		t.Errorf("allele at ladder_min = %d, want forced up to 6", out[0])
	}

	out, err = malan.MutateHaplotype(rng, []int{6}, model)
	if err != nil {
		t.Fatalf("MutateHaplotype() err = %v", err)
	}
	if out[0] != 5 {
		t.Errorf("allele at ladder_max = %d, want forced down to 5", out[0])
	}
}

func TestMutateHaplotypeNoLegalStep(t *testing.T) {
	rng := malan.NewRand(1)
	model := malan.MutationModel{
		Rates:  []float64{1.0},
		Ladder: &malan.Ladder{Min: []int{5}, Max: []int{5}},
	}
	_, err := malan.MutateHaplotype(rng, []int{5}, model)
	if !malan.IsKind(err, malan.InvalidArgument) {
		t.Fatalf("err kind = %v, want InvalidArgument", err)
	}
}

func TestMutateHaplotypeOutOfLadderIsFatal(t *testing.T) {
	rng := malan.NewRand(1)
	model := malan.MutationModel{
		Rates:  []float64{0.5},
		Ladder: &malan.Ladder{Min: []int{0}, Max: []int{10}},
	}
	_, err := malan.MutateHaplotype(rng, []int{11}, model)
	if !malan.IsKind(err, malan.InvalidArgument) {
		t.Fatalf("err kind = %v, want InvalidArgument", err)
	}
}

func TestMutateHaplotypeRateOutOfRange(t *testing.T) {
	rng := malan.NewRand(1)
	model := malan.MutationModel{Rates: []float64{1.5}}
	_, err := malan.MutateHaplotype(rng, []int{0}, model)
	if !malan.IsKind(err, malan.InvalidArgument) {
		t.Fatalf("err kind = %v, want InvalidArgument", err)
	}
}

func TestPopulateHaplotypesSTRPropagatesThroughPedigree(t *testing.T) {
	rng := malan.NewRand(3)
	sim, err := malan.SampleGenealogy(6, malan.FixedGenerations(4), false, rng, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("SampleGenealogy() err = %v", err)
	}
	pedigrees, err := malan.BuildPedigrees(sim.Population, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("BuildPedigrees() err = %v", err)
	}

	model := malan.MutationModel{Rates: []float64{0.3, 0.1}}
	founder := malan.ZeroFounder(2)
	if err := malan.PopulateHaplotypesSTR(pedigrees, model, founder, true, rng, malan.NeverCancel{}); err != nil {
		t.Fatalf("PopulateHaplotypesSTR() err = %v", err)
	}

	for i := 0; i < sim.Population.Len(); i++ {
		ind := sim.Population.At(i)
		if !ind.HaplotypeSet {
			t.Errorf("pid %d has no haplotype set after PopulateHaplotypesSTR", ind.PID)
		}
		if len(ind.Haplotype) != 2 {
			t.Errorf("pid %d haplotype has %d loci, want 2", ind.PID, len(ind.Haplotype))
		}
	}
}

func TestPopulateHaplotypesSTRCustomFoundersRequiresEntry(t *testing.T) {
	rng := malan.NewRand(3)
	sim, err := malan.SampleGenealogy(4, malan.FixedGenerations(2), false, rng, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("SampleGenealogy() err = %v", err)
	}
	pedigrees, err := malan.BuildPedigrees(sim.Population, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("BuildPedigrees() err = %v", err)
	}

	model := malan.MutationModel{Rates: []float64{0.2}}
	err = malan.PopulateHaplotypesSTRCustomFounders(pedigrees, model, map[int]malan.FounderGenerator{}, true, rng, malan.NeverCancel{})
	if !malan.IsKind(err, malan.InvalidArgument) {
		t.Fatalf("err kind = %v, want InvalidArgument", err)
	}
}

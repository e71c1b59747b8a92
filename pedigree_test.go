package malan_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/islandsomewhere/malan"
)

func TestBuildPedigreesPartitionsPopulation(t *testing.T) {
	rng := malan.NewRand(5)
	sim, err := malan.SampleGenealogy(6, malan.FixedGenerations(3), false, rng, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("SampleGenealogy() err = %v", err)
	}

	pedigrees, err := malan.BuildPedigrees(sim.Population, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("BuildPedigrees() err = %v", err)
	}

	seen := make(map[int]bool)
	for _, ped := range pedigrees {
		for _, idx := range ped.Members {
			ind := sim.Population.At(idx)
			if ind.PedigreeID == 0 {
				t.Errorf("member pid %d has zero PedigreeID", ind.PID)
			}
			if seen[idx] {
				t.Errorf("pid %d assigned to more than one pedigree", ind.PID)
			}
			seen[idx] = true
		}
	}
	if len(seen) != sim.Population.Len() {
		t.Errorf("pedigree member union covers %d individuals, want %d", len(seen), sim.Population.Len())
	}
}

func TestBuildPedigreesIdempotent(t *testing.T) {
	rng := malan.NewRand(5)
	sim, err := malan.SampleGenealogy(6, malan.FixedGenerations(3), false, rng, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("SampleGenealogy() err = %v", err)
	}

	first, err := malan.BuildPedigrees(sim.Population, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("BuildPedigrees() err = %v", err)
	}
	assignmentsAfterFirst := make([]int, sim.Population.Len())
	for i := range assignmentsAfterFirst {
		assignmentsAfterFirst[i] = sim.Population.At(i).PedigreeID
	}

	second, err := malan.BuildPedigrees(sim.Population, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("BuildPedigrees() (2nd call) err = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("pedigree count changed across calls: %d vs %d", len(first), len(second))
	}
	assignmentsAfterSecond := make([]int, sim.Population.Len())
	for i := range assignmentsAfterSecond {
		assignmentsAfterSecond[i] = sim.Population.At(i).PedigreeID
	}
	if diff := cmp.Diff(assignmentsAfterFirst, assignmentsAfterSecond); diff != "" {
		t.Fatalf("PedigreeID assignments changed across BuildPedigrees calls (-first +second):\n%s", diff)
	}
}

func TestBuildPedigreesCancellation(t *testing.T) {
	rng := malan.NewRand(5)
	sim, err := malan.SampleGenealogy(6, malan.FixedGenerations(3), false, rng, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("SampleGenealogy() err = %v", err)
	}
	cancel := &tripwireCancel{after: 0}
	if _, err := malan.BuildPedigrees(sim.Population, cancel); !malan.IsKind(err, malan.Cancelled) {
		t.Fatalf("err kind = %v, want Cancelled", err)
	}
}

package malan_test

import (
	"testing"

	"github.com/islandsomewhere/malan"
)

func TestMostProlificFathers(t *testing.T) {
	rng := malan.NewRand(17)
	sim, err := malan.SampleGenealogy(10, malan.FixedGenerations(3), false, rng, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("SampleGenealogy() err = %v", err)
	}
	pedigrees, err := malan.BuildPedigrees(sim.Population, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("BuildPedigrees() err = %v", err)
	}

	for _, ped := range pedigrees {
		top := malan.MostProlificFathers(ped, 2)
		if len(top) > 2 {
			t.Fatalf("MostProlificFathers(k=2) returned %d entries", len(top))
		}
		if len(top) < 2 {
			continue
		}
		first, ok := sim.Population.ByPID(top[0])
		if !ok {
			t.Fatalf("pid %d not found", top[0])
		}
		second, ok := sim.Population.ByPID(top[1])
		if !ok {
			t.Fatalf("pid %d not found", top[1])
		}
		if first.NumChildren() < second.NumChildren() {
			t.Errorf("MostProlificFathers not descending by child count: %d (pid %d) before %d (pid %d)",
				first.NumChildren(), first.PID, second.NumChildren(), second.PID)
		}
	}
}

func TestMostProlificFathersCapsAtMemberCount(t *testing.T) {
	rng := malan.NewRand(1)
	sim, err := malan.SampleGenealogy(2, malan.FixedGenerations(1), false, rng, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("SampleGenealogy() err = %v", err)
	}
	pedigrees, err := malan.BuildPedigrees(sim.Population, malan.NeverCancel{})
	if err != nil {
		t.Fatalf("BuildPedigrees() err = %v", err)
	}
	top := malan.MostProlificFathers(pedigrees[0], 100)
	if len(top) != len(pedigrees[0].Members) {
		t.Errorf("MostProlificFathers(k=100) returned %d, want %d (member count)", len(top), len(pedigrees[0].Members))
	}
}

package malan

// FounderGenerator produces a founder's pre-mutation haplotype (a zero
// vector, a custom per-founder value, or a ladder-sampled draw). The
// haplotype engine always applies exactly one mutation pass on top of
// whatever this returns.
type FounderGenerator func(rng RandomSource) []int

// ZeroFounder returns a FounderGenerator that starts every founder at the
// all-zero haplotype of the given length, left for the engine's one
// mandatory mutation pass to perturb.
func ZeroFounder(numLoci int) FounderGenerator {
	return func(RandomSource) []int {
		return make([]int, numLoci)
	}
}

// Ladder bounds legal allele values per locus under stepwise mutation.
// Min and Max must have the same length as the MutationModel's Rates.
type Ladder struct {
	Min []int
	Max []int
}

// MutationModel configures per-locus stepwise mutation rates and an
// optional Ladder. A nil Ladder means unbounded stepwise mutation.
type MutationModel struct {
	Rates  []float64
	Ladder *Ladder
}

// mutateLocus applies one stepwise mutation draw to a single allele at
// the given locus: with probability Rates[locus], perturb by ±1,
// equiprobable unless a Ladder forces a direction at a boundary.
func mutateLocus(rng RandomSource, allele int, locus int, model MutationModel) (int, error) {
	mu := model.Rates[locus]
	if mu < 0 || mu > 1 {
		return 0, newError(InvalidArgument, "mutation rate at locus %d must be in [0,1], got %v", locus, mu)
	}

	bounded := model.Ladder != nil
	var lo, hi int
	if bounded {
		lo, hi = model.Ladder.Min[locus], model.Ladder.Max[locus]
		if allele < lo || allele > hi {
			return 0, newError(InvalidArgument, "allele %d at locus %d lies outside ladder [%d,%d]", allele, locus, lo, hi)
		}
	}

	if rng.Unif() >= mu {
		return allele, nil
	}

	up := rng.Unif() < 0.5
	if bounded {
		switch {
		case lo == hi:
			return 0, newError(InvalidArgument, "locus %d has no legal mutation step within ladder [%d,%d]", locus, lo, hi)
		case allele == lo:
			up = true
		case allele == hi:
			up = false
		}
	}
	if up {
		return allele + 1, nil
	}
	return allele - 1, nil
}

// MutateHaplotype applies mutateLocus independently to every locus of h,
// returning a new slice. len(h) must equal len(model.Rates), and if
// model.Ladder is set, its Min/Max slices must match that length too.
func MutateHaplotype(rng RandomSource, h []int, model MutationModel) ([]int, error) {
	if len(h) != len(model.Rates) {
		return nil, newError(InvalidArgument, "haplotype has %d loci, mutation model expects %d", len(h), len(model.Rates))
	}
	if model.Ladder != nil && (len(model.Ladder.Min) != len(h) || len(model.Ladder.Max) != len(h)) {
		return nil, newError(InvalidArgument, "ladder has %d/%d loci, haplotype has %d", len(model.Ladder.Min), len(model.Ladder.Max), len(h))
	}

	out := make([]int, len(h))
	for l, allele := range h {
		mutated, err := mutateLocus(rng, allele, l, model)
		if err != nil {
			return nil, err
		}
		out[l] = mutated
	}
	return out, nil
}

// mutateIndividualOnce enforces the invariant that a haplotype is
// mutated at most once, immediately after being set: fails with
// InvalidState if ind has no haplotype set, or has already been mutated.
func mutateIndividualOnce(ind *Individual, rng RandomSource, model MutationModel) error {
	if !ind.HaplotypeSet {
		return newError(InvalidState, "pid %d has no haplotype set to mutate", ind.PID)
	}
	if ind.HaplotypeMutated {
		return newError(InvalidState, "pid %d haplotype was already mutated", ind.PID)
	}
	mutated, err := MutateHaplotype(rng, ind.Haplotype, model)
	if err != nil {
		return err
	}
	ind.Haplotype = mutated
	ind.HaplotypeMutated = true
	return nil
}

func assignFounderHaplotype(ind *Individual, founder FounderGenerator, model MutationModel, rng RandomSource) error {
	if ind.HaplotypeSet {
		return newError(InvalidState, "pid %d haplotype already set", ind.PID)
	}
	h := founder(rng)
	if len(h) != len(model.Rates) {
		return newError(InvalidArgument, "founder haplotype has %d loci, model expects %d", len(h), len(model.Rates))
	}
	ind.Haplotype = append([]int(nil), h...)
	ind.HaplotypeSet = true
	return mutateIndividualOnce(ind, rng, model)
}

func propagateChildHaplotype(child, father *Individual, model MutationModel, rng RandomSource) error {
	if !father.HaplotypeSet {
		return newError(InvalidState, "father pid %d has no haplotype to propagate", father.PID)
	}
	if child.HaplotypeSet {
		return newError(InvalidState, "pid %d haplotype already set", child.PID)
	}
	child.Haplotype = append([]int(nil), father.Haplotype...)
	child.HaplotypeSet = true
	return mutateIndividualOnce(child, rng, model)
}

// PopulateHaplotypesSTR draws a founder haplotype for each Pedigree's
// root via founder, then propagates it to every descendant with one
// stepwise mutation per edge. If recurseDescendants is false, only the
// root's direct children receive haplotypes.
func PopulateHaplotypesSTR(pedigrees []*Pedigree, model MutationModel, founder FounderGenerator, recurseDescendants bool, rng RandomSource, cancel CancelProbe) error {
	if cancel == nil {
		cancel = NeverCancel{}
	}
	for _, ped := range pedigrees {
		if cancel.Cancelled() {
			return newError(Cancelled, "pedigrees_all_populate_haplotypes: cancelled")
		}
		if err := populateOnePedigreeSTR(ped, model, founder, recurseDescendants, rng); err != nil {
			return err
		}
	}
	return nil
}

// PopulateHaplotypesSTRCustomFounders is PopulateHaplotypesSTR with a
// distinct FounderGenerator per pedigree, keyed by Pedigree.ID.
func PopulateHaplotypesSTRCustomFounders(pedigrees []*Pedigree, model MutationModel, founders map[int]FounderGenerator, recurseDescendants bool, rng RandomSource, cancel CancelProbe) error {
	if cancel == nil {
		cancel = NeverCancel{}
	}
	for _, ped := range pedigrees {
		if cancel.Cancelled() {
			return newError(Cancelled, "pedigrees_all_populate_haplotypes_custom_founders: cancelled")
		}
		gen, ok := founders[ped.ID]
		if !ok {
			return newError(InvalidArgument, "no founder generator supplied for pedigree %d", ped.ID)
		}
		if err := populateOnePedigreeSTR(ped, model, gen, recurseDescendants, rng); err != nil {
			return err
		}
	}
	return nil
}

// PopulateHaplotypesSTRLadderBounded is PopulateHaplotypesSTR with an
// explicit Ladder wired into the MutationModel.
func PopulateHaplotypesSTRLadderBounded(pedigrees []*Pedigree, rates []float64, ladder Ladder, founder FounderGenerator, recurseDescendants bool, rng RandomSource, cancel CancelProbe) error {
	return PopulateHaplotypesSTR(pedigrees, MutationModel{Rates: rates, Ladder: &ladder}, founder, recurseDescendants, rng, cancel)
}

func populateOnePedigreeSTR(ped *Pedigree, model MutationModel, founder FounderGenerator, recurseDescendants bool, rng RandomSource) error {
	pop := ped.Population()
	root := pop.At(ped.Root)
	if err := assignFounderHaplotype(root, founder, model, rng); err != nil {
		return err
	}

	type queued struct {
		idx   int
		depth int
	}
	queue := []queued{{idx: ped.Root, depth: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth > 0 && !recurseDescendants {
			continue
		}
		father := pop.At(cur.idx)
		for _, childIdx := range pop.ChildIndices(cur.idx) {
			child := pop.At(childIdx)
			if err := propagateChildHaplotype(child, father, model, rng); err != nil {
				return err
			}
			queue = append(queue, queued{idx: childIdx, depth: cur.depth + 1})
		}
	}
	return nil
}

package malan

import (
	"math"
	"sort"
)

// Genotype is one (unordered) diploid allele pair and its probability
// mass, enumerated with A >= B (lower-triangular order: 00, 10, 11, 20,
// 21, 22, ...).
type Genotype struct {
	A, B int
	Prob float64
}

// GenotypeProbabilities computes the genotype probability vector for a
// normalized allele distribution p and population-structure parameter
// theta:
//
//	Homozygote (i=i):  P(ii) = theta*p_i + (1-theta)*p_i^2
//	Heterozygote (i!=j): P(ij) = (1-theta)*2*p_i*p_j
//
// The result sums to 1 for any normalized p and theta in [0,1].
func GenotypeProbabilities(p []float64, theta float64) ([]Genotype, error) {
	if err := validateAlleleFreqs(p); err != nil {
		return nil, err
	}
	if theta < 0 || theta > 1 {
		return nil, newError(InvalidArgument, "theta must be in [0,1], got %v", theta)
	}

	k := len(p)
	out := make([]Genotype, 0, k*(k+1)/2)
	for i := 0; i < k; i++ {
		for j := 0; j <= i; j++ {
			var prob float64
			if i == j {
				prob = theta*p[i] + (1-theta)*p[i]*p[i]
			} else {
				prob = (1 - theta) * 2 * p[i] * p[j]
			}
			out = append(out, Genotype{A: i, B: j, Prob: prob})
		}
	}
	return out, nil
}

func validateAlleleFreqs(p []float64) error {
	if len(p) == 0 {
		return newError(InvalidArgument, "allele distribution must have at least one allele")
	}
	sum := 0.0
	for _, v := range p {
		if v < 0 {
			return newError(InvalidArgument, "allele frequency %v is negative", v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-6 {
		return newError(InvalidArgument, "allele distribution must sum to 1, got %v", sum)
	}
	return nil
}

// conditionalCDF is row i of the K×K conditional cumulative distribution
// of the partner allele given one parent contributed allele i: raw joint
// masses theta*p_i+(1-theta)*p_i^2 on the diagonal and
// (1-theta)*p_i*p_j off-diagonal (symmetric before normalization), each
// row normalized by p_i and cumulated.
func conditionalCDF(p []float64, theta float64) [][]float64 {
	k := len(p)
	rows := make([][]float64, k)
	for i := 0; i < k; i++ {
		row := make([]float64, k)
		running := 0.0
		for j := 0; j < k; j++ {
			var raw float64
			if i == j {
				raw = theta*p[i] + (1-theta)*p[i]*p[i]
			} else {
				raw = (1 - theta) * p[i] * p[j]
			}
			running += raw / p[i]
			row[j] = running
		}
		row[k-1] = 1
		rows[i] = row
	}
	return rows
}

// AutosomalModel precomputes the genotype and conditional distributions
// for one 2-locus autosomal marker, so repeated founder/child draws over
// a large genealogy don't rebuild a K×K matrix per individual.
type AutosomalModel struct {
	alleleFreqs  []float64
	theta        float64
	mutationRate float64
	founderCDF   []float64   // cumulative over genotypeOrder
	genotypeOrder []Genotype
	conditional  [][]float64
}

// NewAutosomalModel validates p, theta, and mutationRate and precomputes
// the founder and conditional distributions used by
// PopulateHaplotypesAutosomal.
func NewAutosomalModel(p []float64, theta float64, mutationRate float64) (*AutosomalModel, error) {
	genotypes, err := GenotypeProbabilities(p, theta)
	if err != nil {
		return nil, err
	}
	if mutationRate < 0 || mutationRate > 1 {
		return nil, newError(InvalidArgument, "mutation rate must be in [0,1], got %v", mutationRate)
	}

	cumsum := make([]float64, len(genotypes))
	running := 0.0
	for i, g := range genotypes {
		running += g.Prob
		cumsum[i] = running
	}
	cumsum[len(cumsum)-1] = 1

	return &AutosomalModel{
		alleleFreqs:   append([]float64(nil), p...),
		theta:         theta,
		mutationRate:  mutationRate,
		founderCDF:    cumsum,
		genotypeOrder: genotypes,
		conditional:   conditionalCDF(p, theta),
	}, nil
}

// NumAlleles returns K, the number of distinct alleles this model draws
// over.
func (m *AutosomalModel) NumAlleles() int {
	return len(m.alleleFreqs)
}

func (m *AutosomalModel) mutationModel() MutationModel {
	k := m.NumAlleles()
	return MutationModel{
		Rates:  []float64{m.mutationRate, m.mutationRate},
		Ladder: &Ladder{Min: []int{0, 0}, Max: []int{k - 1, k - 1}},
	}
}

func (m *AutosomalModel) sampleFounder(rng RandomSource) (a, b int) {
	u := rng.Unif()
	idx := sort.Search(len(m.founderCDF), func(i int) bool { return m.founderCDF[i] >= u })
	g := m.genotypeOrder[idx]
	return g.B, g.A // g.A >= g.B by construction; store ascending
}

func (m *AutosomalModel) sampleMaternal(rng RandomSource, paternal int) int {
	row := m.conditional[paternal]
	u := rng.Unif()
	return sort.Search(len(row), func(j int) bool { return row[j] >= u })
}

func sortPair(h []int) {
	if h[0] > h[1] {
		h[0], h[1] = h[1], h[0]
	}
}

func assignFounderGenotype(ind *Individual, model *AutosomalModel, rng RandomSource) error {
	if ind.HaplotypeSet {
		return newError(InvalidState, "pid %d haplotype already set", ind.PID)
	}
	a, b := model.sampleFounder(rng)
	ind.Haplotype = []int{a, b}
	ind.HaplotypeSet = true
	if err := mutateIndividualOnce(ind, rng, model.mutationModel()); err != nil {
		return err
	}
	sortPair(ind.Haplotype)
	return nil
}

func propagateChildGenotype(child, father *Individual, model *AutosomalModel, rng RandomSource) error {
	if !father.HaplotypeSet {
		return newError(InvalidState, "father pid %d has no haplotype to propagate", father.PID)
	}
	if len(father.Haplotype) != 2 {
		return newError(InvalidArgument, "father pid %d haplotype has %d loci, expected 2", father.PID, len(father.Haplotype))
	}
	if child.HaplotypeSet {
		return newError(InvalidState, "pid %d haplotype already set", child.PID)
	}

	paternal := father.Haplotype[0]
	if rng.Unif() < 0.5 {
		paternal = father.Haplotype[1]
	}
	maternal := model.sampleMaternal(rng, paternal)

	child.Haplotype = []int{paternal, maternal}
	child.HaplotypeSet = true
	if err := mutateIndividualOnce(child, rng, model.mutationModel()); err != nil {
		return err
	}
	sortPair(child.Haplotype)
	return nil
}

// PopulateHaplotypesAutosomal draws a founder genotype for each
// Pedigree's root and propagates it to every descendant under the
// 2-locus theta model.
func PopulateHaplotypesAutosomal(pedigrees []*Pedigree, model *AutosomalModel, rng RandomSource, cancel CancelProbe) error {
	if cancel == nil {
		cancel = NeverCancel{}
	}
	for _, ped := range pedigrees {
		if cancel.Cancelled() {
			return newError(Cancelled, "pedigrees_all_populate_haplotypes_autosomal: cancelled")
		}
		if err := populateOnePedigreeAutosomal(ped, model, rng); err != nil {
			return err
		}
	}
	return nil
}

func populateOnePedigreeAutosomal(ped *Pedigree, model *AutosomalModel, rng RandomSource) error {
	pop := ped.Population()
	root := pop.At(ped.Root)
	if err := assignFounderGenotype(root, model, rng); err != nil {
		return err
	}

	queue := []int{ped.Root}
	for len(queue) > 0 {
		curIdx := queue[0]
		queue = queue[1:]
		father := pop.At(curIdx)
		for _, childIdx := range pop.ChildIndices(curIdx) {
			child := pop.At(childIdx)
			if err := propagateChildGenotype(child, father, model, rng); err != nil {
				return err
			}
			queue = append(queue, childIdx)
		}
	}
	return nil
}

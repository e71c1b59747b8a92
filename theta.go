package malan

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ObservedGenotype is one sampled diploid genotype (a, b) with a <= b,
// the unit the theta/F_ST estimators in this package consume.
type ObservedGenotype struct {
	A, B int
}

func normalizeGenotype(a, b int) ObservedGenotype {
	if a > b {
		a, b = b, a
	}
	return ObservedGenotype{A: a, B: b}
}

// ThetaResult is the {estimate, error, details} structured outcome of a
// theta estimation: non-fatal diagnostic conditions (an
// under-determined sample, a failed QR solve, an out-of-range point
// estimate) are encoded here rather than returned as a Go error, since a
// point estimate may still be worth reporting alongside the flag.
type ThetaResult struct {
	Estimate        float64
	Error           bool
	Details         string
	NumEquations    int
	UniqueGenotypes int
}

// EstimateTheta1SubpopGenotypes builds one least-squares equation per
// unique observed genotype from the sample's allele and genotype
// frequencies, then solves the 1-parameter problem
// min ||X*theta - y||^2 via QR.
func EstimateTheta1SubpopGenotypes(genotypes []ObservedGenotype) (*ThetaResult, error) {
	n := len(genotypes)
	if n == 0 {
		return nil, newError(InvalidArgument, "estimate_theta_1subpop: at least one genotype required")
	}

	alleleCount := make(map[int]int)
	genotypeCount := make(map[ObservedGenotype]int)
	for _, g := range genotypes {
		ng := normalizeGenotype(g.A, g.B)
		alleleCount[ng.A]++
		alleleCount[ng.B]++
		genotypeCount[ng]++
	}

	totalAlleles := float64(2 * n)
	p := make(map[int]float64, len(alleleCount))
	for allele, c := range alleleCount {
		p[allele] = float64(c) / totalAlleles
	}

	unique := make([]ObservedGenotype, 0, len(genotypeCount))
	for g := range genotypeCount {
		unique = append(unique, g)
	}
	sort.Slice(unique, func(i, j int) bool {
		if unique[i].A != unique[j].A {
			return unique[i].A < unique[j].A
		}
		return unique[i].B < unique[j].B
	})

	if len(unique) <= 1 {
		return &ThetaResult{
			Error:           true,
			Details:         "Only one genotype observed",
			UniqueGenotypes: len(unique),
		}, nil
	}

	x := make([]float64, len(unique))
	y := make([]float64, len(unique))
	for i, g := range unique {
		pa, pb := p[g.A], p[g.B]
		pab := float64(genotypeCount[g]) / float64(n)
		if g.A == g.B {
			x[i] = pa - pa*pa
			y[i] = pab - pa*pa
		} else {
			x[i] = -2 * pa * pb
			y[i] = pab - 2*pa*pb
		}
	}

	theta, err := solveThetaLeastSquares(x, y)
	if err != nil {
		return &ThetaResult{
			Error:           true,
			Details:         wrapError(NumericFailure, err, "QR decomposition failed").Error(),
			NumEquations:    len(x),
			UniqueGenotypes: len(unique),
		}, nil
	}

	result := &ThetaResult{
		Estimate:        theta,
		Details:         "OK",
		NumEquations:    len(x),
		UniqueGenotypes: len(unique),
	}
	if theta < 0 || theta > 1 {
		result.Error = true
		result.Details = fmt.Sprintf("estimate %v outside [0,1]", theta)
	}
	return result, nil
}

// solveThetaLeastSquares solves the 1-parameter least-squares problem
// min ||x*theta - y||^2 via QR decomposition (gonum.org/v1/gonum/mat).
func solveThetaLeastSquares(x, y []float64) (float64, error) {
	n := len(x)
	a := mat.NewDense(n, 1, x)
	b := mat.NewDense(n, 1, y)

	var qr mat.QR
	qr.Factorize(a)

	var dst mat.Dense
	if err := qr.SolveTo(&dst, false, b); err != nil {
		return 0, err
	}
	return dst.At(0, 0), nil
}

// EstimateTheta1SubpopIndividuals is EstimateTheta1SubpopGenotypes over
// a sample of Individuals, extracting each one's stored 2-locus
// autosomal genotype.
func EstimateTheta1SubpopIndividuals(pop *Population, indices []int) (*ThetaResult, error) {
	genotypes, err := genotypesFromIndividuals(pop, indices)
	if err != nil {
		return nil, err
	}
	return EstimateTheta1SubpopGenotypes(genotypes)
}

func genotypesFromIndividuals(pop *Population, indices []int) ([]ObservedGenotype, error) {
	out := make([]ObservedGenotype, len(indices))
	for i, idx := range indices {
		ind := pop.At(idx)
		if !ind.HaplotypeSet {
			return nil, newError(InvalidState, "pid %d has no haplotype set", ind.PID)
		}
		if len(ind.Haplotype) != 2 {
			return nil, newError(InvalidArgument, "pid %d haplotype has %d loci, expected 2", ind.PID, len(ind.Haplotype))
		}
		out[i] = normalizeGenotype(ind.Haplotype[0], ind.Haplotype[1])
	}
	return out, nil
}

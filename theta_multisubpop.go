package malan

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// FstResult is the {F, theta, f} triple Weir's GDA2 multi-subpopulation
// estimator reports: F is Wright's F_IT, Theta is F_ST, F_IS is f.
type FstResult struct {
	F          float64
	Theta      float64
	FIS        float64
	NumSubpops int
	NumAlleles int
}

// EstimateThetaSubpopsGenotypes, given r subpopulations of observed
// genotypes, computes per-allele
// Weir-and-Cockerham variance components (a, b, c below, summed across
// alleles into S1, S2, S3) and reports F = 1 - ΣS3/ΣS2, theta = ΣS1/ΣS2,
// f = (F - theta) / (1 - theta), following Weir's GDA2 pp. 168-179.
func EstimateThetaSubpopsGenotypes(subpops [][]ObservedGenotype) (*FstResult, error) {
	r := len(subpops)
	if r <= 0 {
		return nil, newError(InvalidArgument, "estimate_theta_subpops: at least one subpopulation required")
	}
	if r < 2 {
		return nil, newError(InvalidArgument, "estimate_theta_subpops: at least two subpopulations required to estimate among-subpopulation variance")
	}

	n := make([]float64, r)
	for i, s := range subpops {
		if len(s) == 0 {
			return nil, newError(InvalidArgument, "subpopulation %d is empty", i)
		}
		n[i] = float64(len(s))
	}

	alleleSet := make(map[int]bool)
	for _, s := range subpops {
		for _, g := range s {
			alleleSet[g.A] = true
			alleleSet[g.B] = true
		}
	}
	alleles := make([]int, 0, len(alleleSet))
	for a := range alleleSet {
		alleles = append(alleles, a)
	}
	sort.Ints(alleles)

	nSum := floats.Sum(n)
	nBar := nSum / float64(r)
	sumSq := 0.0
	for _, ni := range n {
		sumSq += ni * ni
	}
	nc := (nSum - sumSq/nSum) / float64(r-1)

	var s1, s2, s3 float64
	for _, allele := range alleles {
		p := make([]float64, r) // frac1-weighted allele frequency per subpop
		h := make([]float64, r) // frac2-weighted heterozygote frequency per subpop

		for i, s := range subpops {
			frac1 := 1 / (2 * n[i])
			frac2 := 1 / n[i]
			alleleCopies := 0
			hetCount := 0
			for _, g := range s {
				if g.A == allele {
					alleleCopies++
				}
				if g.B == allele {
					alleleCopies++
				}
				if (g.A == allele) != (g.B == allele) {
					hetCount++
				}
			}
			p[i] = frac1 * float64(alleleCopies)
			h[i] = frac2 * float64(hetCount)
		}

		var pBar, hBar float64
		for i := range p {
			pBar += n[i] * p[i]
			hBar += n[i] * h[i]
		}
		pBar /= nSum
		hBar /= nSum

		var sVar float64
		for i := range p {
			d := p[i] - pBar
			sVar += n[i] * d * d
		}
		sVar /= float64(r-1) * nBar

		rr := float64(r)
		a := (nBar / nc) * (sVar - (1/(nBar-1))*(pBar*(1-pBar)-((rr-1)/rr)*sVar-hBar/4))
		b := (nBar / (nBar - 1)) * (pBar*(1-pBar) - ((rr-1)/rr)*sVar - ((2*nBar-1)/(4*nBar))*hBar)
		c := hBar / 2

		s1 += a
		s2 += a + b + c
		s3 += c
	}

	if s2 == 0 {
		return nil, newError(NumericFailure, "estimate_theta_subpops: degenerate variance components (ΣS2=0)")
	}

	theta := s1 / s2
	f := 1 - s3/s2
	fis := (f - theta) / (1 - theta)

	return &FstResult{F: f, Theta: theta, FIS: fis, NumSubpops: r, NumAlleles: len(alleles)}, nil
}

// EstimateThetaSubpopsIndividuals is EstimateThetaSubpopsGenotypes over
// r samples of Individuals, extracting each one's stored 2-locus
// autosomal genotype.
func EstimateThetaSubpopsIndividuals(pop *Population, subpopIndices [][]int) (*FstResult, error) {
	subpops := make([][]ObservedGenotype, len(subpopIndices))
	for i, indices := range subpopIndices {
		genotypes, err := genotypesFromIndividuals(pop, indices)
		if err != nil {
			return nil, err
		}
		subpops[i] = genotypes
	}
	return EstimateThetaSubpopsGenotypes(subpops)
}

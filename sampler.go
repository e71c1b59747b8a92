package malan

import (
	"sort"

	"github.com/google/uuid"
)

// GenerationSpec selects how many generations the Sampler produces: a
// fixed positive count, or the sentinel "simulate until only one
// distinct father was selected in the most recent step."
type GenerationSpec struct {
	fixed bool
	n     int
}

// FixedGenerations requests exactly n generations (0..n-1).
func FixedGenerations(n int) GenerationSpec {
	return GenerationSpec{fixed: true, n: n}
}

// UntilOneFounder requests the sentinel termination mode.
func UntilOneFounder() GenerationSpec {
	return GenerationSpec{fixed: false}
}

// Simulation is the result of a Sampler run: the Population it built plus
// bookkeeping about how the run ended. RunID exists purely for external
// correlation (logs, CLI output) and is never consulted by any algorithm
// in this package.
type Simulation struct {
	Population               *Population
	GenerationsCompleted     int
	FoundersLeft             int
	EndGenerationIndividuals []int // arena indices, generation 0
	KeptIndividuals          []int // arena indices at generation <= keepKGenerations, variance sampler only
	VerboseTables            *VerboseTables
	RunID                    uuid.UUID
}

// VerboseTables holds the three M×G tables SampleGenealogy(verbose=true)
// produces: the pid at (slot, generation), the pid of that slot's father
// in the next generation, and the father's 1-based slot index.
type VerboseTables struct {
	PID        *Table
	FatherPID  *Table
	FatherSlot *Table
}

// paternalSelector assigns, for each of the m child slots of a
// generation step, a father-slot index in [0, m).
type paternalSelector interface {
	assignFathers(rng RandomSource, m int) []int
}

// uniformSelector implements the uniform paternal-fitness model: each
// child picks a father index uniformly in [0, M).
type uniformSelector struct{}

func (uniformSelector) assignFathers(rng RandomSource, m int) []int {
	out := make([]int, m)
	for i := range out {
		out[i] = rng.RandInt(m)
	}
	return out
}

// varianceSelector implements the gamma-weighted paternal-fitness model:
// each generation step draws one Gamma(shape, scale) weight per candidate
// father, builds a cumulative distribution over those weights, and for
// every child slot inverts a uniform draw against it with sort.Search
// (binary search, O(log M)) over the cumulative vector's natural order.
type varianceSelector struct {
	shape, scale float64
}

func (v varianceSelector) assignFathers(rng RandomSource, m int) []int {
	weights := make([]float64, m)
	total := 0.0
	for i := range weights {
		weights[i] = rng.Gamma(v.shape, v.scale)
		total += weights[i]
	}

	cumsum := make([]float64, m)
	running := 0.0
	for i, w := range weights {
		running += w / total
		cumsum[i] = running
	}
	// Guard against floating point drift leaving the last entry just
	// under 1, which would make a u arbitrarily close to 1 unmatched.
	cumsum[m-1] = 1

	out := make([]int, m)
	for i := range out {
		u := rng.Unif()
		out[i] = sort.Search(m, func(j int) bool { return cumsum[j] >= u })
	}
	return out
}

// SampleGenealogy generates a population across generations under the
// uniform paternal-fitness model.
func SampleGenealogy(m int, gen GenerationSpec, verbose bool, rng RandomSource, cancel CancelProbe) (*Simulation, error) {
	return runSampler(m, gen, uniformSelector{}, verbose, -1, rng, cancel)
}

// SampleGenealogyVariance generates a population across generations under
// the gamma-weighted paternal-fitness model. keepKGenerations selects
// which allocated generations (by generation index, 1-based step) are
// recorded into Simulation.KeptIndividuals; pass 0 to keep none.
func SampleGenealogyVariance(m int, gen GenerationSpec, shape, scaleParam float64, verbose bool, keepKGenerations int, rng RandomSource, cancel CancelProbe) (*Simulation, error) {
	if shape <= 0 || scaleParam <= 0 {
		return nil, newError(InvalidArgument, "sample_geneology_variance: gamma shape and scale must be > 0, got shape=%v scale=%v", shape, scaleParam)
	}
	return runSampler(m, gen, varianceSelector{shape: shape, scale: scaleParam}, verbose, keepKGenerations, rng, cancel)
}

func runSampler(m int, gen GenerationSpec, selector paternalSelector, verbose bool, keepKGenerations int, rng RandomSource, cancel CancelProbe) (*Simulation, error) {
	if m <= 1 {
		return nil, newError(InvalidArgument, "sample_geneology: population size must be > 1, got %d", m)
	}
	if gen.fixed && gen.n <= 0 {
		return nil, newError(InvalidArgument, "sample_geneology: generations must be a positive integer, got %d", gen.n)
	}
	if cancel == nil {
		cancel = NeverCancel{}
	}
	if rng == nil {
		return nil, newError(InvalidArgument, "sample_geneology: a RandomSource is required")
	}

	pop := NewPopulation()

	// Generation 0: M fresh founders.
	childSlots := make([]int, m)
	for i := range childSlots {
		childSlots[i] = pop.alloc(0)
	}
	endGeneration := append([]int(nil), childSlots...)

	var tables *VerboseTables
	if verbose {
		tables = &VerboseTables{
			PID:        NewTable(m),
			FatherPID:  NewTable(m),
			FatherSlot: NewTable(m),
		}
		for i, idx := range childSlots {
			tables.PID.Set(i, 0, pop.At(idx).PID)
		}
	}

	var kept []int

	foundersLeft := m
	generationsCompleted := 1
	stepsToRun := -1 // sentinel mode runs until termination
	if gen.fixed {
		stepsToRun = gen.n - 1
	}

	for g := 1; stepsToRun < 0 || g <= stepsToRun; g++ {
		if cancel.Cancelled() {
			return nil, newError(Cancelled, "sample_geneology: cancelled at generation %d", g)
		}

		assignment := selector.assignFathers(rng, m)
		fatherGenSlots := make([]int, m)
		for i := range fatherGenSlots {
			fatherGenSlots[i] = -1
		}

		for i, childIdx := range childSlots {
			if childIdx < 0 {
				// Defensive: in the pure forward model this slot is
				// never null. Retained anyway since the guard costs
				// nothing.
				continue
			}
			fatherSlot := assignment[i]
			if fatherGenSlots[fatherSlot] < 0 {
				fatherGenSlots[fatherSlot] = pop.alloc(g)
				if keepKGenerations > 0 && g <= keepKGenerations {
					kept = append(kept, fatherGenSlots[fatherSlot])
				}
			}
			fatherIdx := fatherGenSlots[fatherSlot]
			pop.link(childIdx, fatherIdx)

			if verbose {
				tables.FatherPID.Set(i, g-1, pop.At(fatherIdx).PID)
				tables.FatherSlot.Set(i, g-1, fatherSlot+1)
			}
		}

		newFoundersLeft := 0
		for _, idx := range fatherGenSlots {
			if idx >= 0 {
				newFoundersLeft++
			}
		}
		foundersLeft = newFoundersLeft
		generationsCompleted = g + 1

		if verbose {
			for slot, idx := range fatherGenSlots {
				pid := MissingValue
				if idx >= 0 {
					pid = pop.At(idx).PID
				}
				tables.PID.Set(slot, g, pid)
			}
		}

		childSlots = fatherGenSlots

		if !gen.fixed && newFoundersLeft <= 1 {
			break
		}
	}

	if verbose {
		// Pad all three tables to matching width: a sentinel-terminated
		// run's last iteration wrote FatherPID and
		// FatherSlot for column generationsCompleted-2 but PID for
		// column generationsCompleted-1; bring FatherPID/FatherSlot up
		// to the same width with a final missing column.
		width := tables.PID.Cols()
		tables.FatherPID.PadColumns(width)
		tables.FatherSlot.PadColumns(width)
	}

	return &Simulation{
		Population:              pop,
		GenerationsCompleted:    generationsCompleted,
		FoundersLeft:            foundersLeft,
		EndGenerationIndividuals: endGeneration,
		KeptIndividuals:         kept,
		VerboseTables:           tables,
		RunID:                   uuid.New(),
	}, nil
}

package malan

import "sort"

// Population is the exclusive owner of every Individual it contains,
// backed by a generational arena: individuals are appended once and never
// removed, and father/children links are stored as arena indices rather
// than pointers.
type Population struct {
	individuals []Individual
}

// NewPopulation returns an empty Population.
func NewPopulation() *Population {
	return &Population{}
}

// Len returns the number of Individuals in the Population.
func (p *Population) Len() int {
	return len(p.individuals)
}

// alloc appends a new, fatherless Individual at the given generation and
// returns its arena index. PIDs are 1-based and equal to index+1, so they
// are unique and monotonic within one simulation by construction.
func (p *Population) alloc(generation int) int {
	idx := len(p.individuals)
	p.individuals = append(p.individuals, Individual{
		PID:        idx + 1,
		Generation: generation,
		father:     -1,
	})
	return idx
}

// At returns a pointer to the Individual at the given arena index. The
// pointer is valid only until the Population grows again (e.g. via the
// Sampler); callers that need a pointer past that point should build a
// Pedigree first, which is never built over a Population still under
// construction.
func (p *Population) At(idx int) *Individual {
	return &p.individuals[idx]
}

// ByPID returns the Individual with the given pid, or (nil, false) if no
// such pid exists in this Population.
func (p *Population) ByPID(pid int) (*Individual, bool) {
	idx := pid - 1
	if idx < 0 || idx >= len(p.individuals) {
		return nil, false
	}
	return &p.individuals[idx], true
}

// link records father as idx's father and idx as one of father's
// children, maintaining the invariant father.Generation == idx.Generation
// + 1.
func (p *Population) link(idx, fatherIdx int) {
	p.individuals[idx].father = fatherIdx
	p.individuals[fatherIdx].children = append(p.individuals[fatherIdx].children, idx)
}

// FatherIndex returns idx's father's arena index, or (-1, false) if idx is
// a founder.
func (p *Population) FatherIndex(idx int) (int, bool) {
	f := p.individuals[idx].father
	if f < 0 {
		return -1, false
	}
	return f, true
}

// ChildIndices returns the arena indices of idx's children, in link order.
func (p *Population) ChildIndices(idx int) []int {
	return p.individuals[idx].children
}

// SortedIndividuals returns every Individual in the Population ordered by
// pid, for callers that need reproducible iteration order.
func (p *Population) SortedIndividuals() []*Individual {
	out := make([]*Individual, len(p.individuals))
	for i := range p.individuals {
		out[i] = &p.individuals[i]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

package malan

// Individual is one node in a genealogy: an identity, a generation index,
// an optional father, an append-only child list, optional pedigree
// membership, and an optional haplotype. Individuals live inside a
// Population's arena and are addressed by index rather than pointer, and
// are only meaningful in the context of their owning Population.
type Individual struct {
	// PID is the unique, monotonically-assigned, 1-based identity of this
	// Individual within its Population.
	PID int

	// Generation is 0 for the present (youngest) generation, increasing
	// into the past.
	Generation int

	// father is the arena index of this Individual's father, or -1 if
	// this Individual is a founder (no recorded father).
	father int

	// children holds the arena indices of this Individual's children, in
	// the order they were linked.
	children []int

	// PedigreeID is 0 until BuildPedigrees assigns this Individual to a
	// Pedigree, after which it is stable and matches some Pedigree's ID.
	PedigreeID int

	// Haplotype holds this Individual's allele vector once HaplotypeSet
	// is true. HaplotypeMutated guards against mutating a founder draw,
	// or a propagated copy, more than once.
	Haplotype        []int
	HaplotypeSet     bool
	HaplotypeMutated bool

	// Traversal scratch used by the depth-first meiotic-distance walk.
	// Reset via resetPedigreeScratch before each query so the walk is
	// re-entrant across calls.
	visited  bool
	distance int
}

// HasFather reports whether this Individual has a recorded father.
func (ind Individual) HasFather() bool {
	return ind.father >= 0
}

// NumChildren returns the number of children recorded for this Individual.
func (ind Individual) NumChildren() int {
	return len(ind.children)
}

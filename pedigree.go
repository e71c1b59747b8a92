package malan

// Relation is one parent→child edge of a Pedigree.
type Relation struct {
	ParentIdx int
	ChildIdx  int
}

// Pedigree is a connected component of a genealogy: a non-owning view
// over some of a Population's Individuals. Because the underlying
// genealogy only ever gives an Individual at most one father, the induced
// father→children edges within one Pedigree form a tree (no cycles, one
// path between any two members), an invariant every analytics algorithm
// in this package relies on.
type Pedigree struct {
	ID        int
	pop       *Population
	Members   []int // arena indices, non-owning
	Relations []Relation
	Root      int // arena index of the founder, per the determinism rule below
}

// Population returns the Pedigree's owning Population.
func (p *Pedigree) Population() *Population {
	return p.pop
}

// Contains reports whether idx (an arena index) is a member of p.
func (p *Pedigree) Contains(idx int) bool {
	return p.pop.At(idx).PedigreeID == p.ID
}

// BuildPedigrees partitions pop into disjoint Pedigrees, one per weakly
// connected component of the father/children graph. Every Individual
// ends in exactly one Pedigree; the number of Pedigrees equals the
// number of weakly connected components.
//
// cancel is polled once per pedigree started; a nil cancel behaves like
// NeverCancel. On cancellation, the Pedigrees built so far are discarded
// and the operation fails with Cancelled.
func BuildPedigrees(pop *Population, cancel CancelProbe) ([]*Pedigree, error) {
	if cancel == nil {
		cancel = NeverCancel{}
	}

	n := pop.Len()
	assigned := make([]bool, n)
	var pedigrees []*Pedigree
	nextID := 1

	for start := 0; start < n; start++ {
		if assigned[start] {
			continue
		}
		if cancel.Cancelled() {
			return nil, newError(Cancelled, "build_pedigrees: cancelled")
		}

		ped := &Pedigree{ID: nextID, pop: pop}
		nextID++

		var founders []int
		stack := []int{start}
		assigned[start] = true

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			ped.Members = append(ped.Members, cur)
			pop.At(cur).PedigreeID = ped.ID

			if f, ok := pop.FatherIndex(cur); ok {
				ped.Relations = append(ped.Relations, Relation{ParentIdx: f, ChildIdx: cur})
				if !assigned[f] {
					assigned[f] = true
					stack = append(stack, f)
				}
			} else {
				founders = append(founders, cur)
			}

			for _, c := range pop.ChildIndices(cur) {
				if !assigned[c] {
					assigned[c] = true
					stack = append(stack, c)
				}
			}
		}

		// Normally exactly one founder per component (every Individual
		// has at most one father, so the upward path from any member is
		// unique). The tie-break below only matters for the degenerate
		// multi-founder case.
		ped.Root = smallestPid(pop, founders)

		pedigrees = append(pedigrees, ped)
	}

	return pedigrees, nil
}

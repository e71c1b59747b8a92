package malan

import "sort"

// resetPedigreeScratch clears the visited/distance traversal scratch on
// every member of ped, so MeiosisDist's depth-first walk is re-entrant
// across calls.
func resetPedigreeScratch(ped *Pedigree) {
	pop := ped.Population()
	for _, idx := range ped.Members {
		ind := pop.At(idx)
		ind.visited = false
		ind.distance = 0
	}
}

// findPedigreeByID reconstructs the *Pedigree a PedigreeID refers to by
// re-walking the Population once. MeiosisDist, CalculatePathTo, and the
// histogram below only need Root and membership, both cheap to
// recompute from the already-assigned PedigreeID/father/children links,
// so callers need only a Population and two arena indices rather than also
// keeping the []*Pedigree slice BuildPedigrees returned.
func findPedigreeByID(pop *Population, id int) *Pedigree {
	ped := &Pedigree{ID: id, pop: pop}
	var founders []int
	for i := 0; i < pop.Len(); i++ {
		ind := pop.At(i)
		if ind.PedigreeID != id {
			continue
		}
		ped.Members = append(ped.Members, i)
		if !ind.HasFather() {
			founders = append(founders, i)
		}
	}
	ped.Root = smallestPid(pop, founders)
	return ped
}

// MeiosisDist returns the number of parent-child edges on the unique
// path between a and b within their pedigree. Returns -1 if a and b lie
// in different pedigrees. Fails with InvalidState if either individual
// has no pedigree assigned.
//
// Because a pedigree is a tree, there is exactly one path between any
// two members, so a single depth-first propagation from a suffices: no
// shortest-path bookkeeping beyond a visited flag and a running distance
// is needed.
func MeiosisDist(pop *Population, aIdx, bIdx int) (int, error) {
	a, b := pop.At(aIdx), pop.At(bIdx)
	if a.PedigreeID == 0 {
		return 0, newError(InvalidState, "pid %d has no pedigree", a.PID)
	}
	if b.PedigreeID == 0 {
		return 0, newError(InvalidState, "pid %d has no pedigree", b.PID)
	}
	if a.PedigreeID != b.PedigreeID {
		return -1, nil
	}
	ped := findPedigreeByID(pop, a.PedigreeID)
	return meiosisDistWithin(ped, aIdx, bIdx)
}

// MeiosisDistIn is MeiosisDist for a caller that already holds the
// *Pedigree (the common case right after BuildPedigrees), avoiding the
// O(|Population|) re-scan findPedigreeByID does to recover membership
// from bare PedigreeIDs.
func MeiosisDistIn(ped *Pedigree, aIdx, bIdx int) (int, error) {
	pop := ped.Population()
	a, b := pop.At(aIdx), pop.At(bIdx)
	if a.PedigreeID == 0 || b.PedigreeID == 0 {
		return 0, newError(InvalidState, "individual has no pedigree")
	}
	if a.PedigreeID != b.PedigreeID {
		return -1, nil
	}
	return meiosisDistWithin(ped, aIdx, bIdx)
}

func meiosisDistWithin(ped *Pedigree, aIdx, bIdx int) (int, error) {
	pop := ped.Population()
	if aIdx == bIdx {
		return 0, nil
	}

	resetPedigreeScratch(ped)

	found := -1
	var walk func(cur int, dist int)
	walk = func(cur int, dist int) {
		if found >= 0 {
			return
		}
		ind := pop.At(cur)
		if ind.visited {
			return
		}
		ind.visited = true
		ind.distance = dist
		if cur == bIdx {
			found = dist
			return
		}
		if f, ok := pop.FatherIndex(cur); ok && ped.Contains(f) {
			walk(f, dist+1)
			if found >= 0 {
				return
			}
		}
		for _, c := range pop.ChildIndices(cur) {
			if ped.Contains(c) {
				walk(c, dist+1)
				if found >= 0 {
					return
				}
			}
		}
	}
	walk(aIdx, 0)
	if found < 0 {
		return 0, newError(InvalidState, "pid %d not reachable from pid %d within their pedigree", pop.At(bIdx).PID, pop.At(aIdx).PID)
	}
	return found, nil
}

// rootPath returns the sequence of arena indices from ped.Root down to
// target (inclusive), or nil if target is not in ped.
func rootPath(ped *Pedigree, target int) []int {
	pop := ped.Population()
	if !ped.Contains(target) {
		return nil
	}
	var path []int
	for cur := target; ; {
		path = append(path, cur)
		if cur == ped.Root {
			break
		}
		f, ok := pop.FatherIndex(cur)
		if !ok {
			return nil
		}
		cur = f
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CalculatePathTo finds the path from the pedigree root to a and to b,
// and returns [LCA, ...ancestors down to a reversed..., ...ancestors
// down to b...]. Fails when a and b lie in different pedigrees or either
// root-path cannot be found.
func CalculatePathTo(pop *Population, aIdx, bIdx int) ([]int, error) {
	a, b := pop.At(aIdx), pop.At(bIdx)
	if a.PedigreeID == 0 || b.PedigreeID == 0 {
		return nil, newError(InvalidState, "individual has no pedigree")
	}
	if a.PedigreeID != b.PedigreeID {
		return nil, newError(InvalidState, "pid %d and pid %d are in different pedigrees", a.PID, b.PID)
	}

	ped := findPedigreeByID(pop, a.PedigreeID)
	pathA := rootPath(ped, aIdx)
	pathB := rootPath(ped, bIdx)
	if pathA == nil || pathB == nil {
		return nil, newError(InvalidState, "root path not found for pid %d or pid %d", a.PID, b.PID)
	}

	lcaLen := 0
	for lcaLen < len(pathA) && lcaLen < len(pathB) && pathA[lcaLen] == pathB[lcaLen] {
		lcaLen++
	}
	// lcaLen is at least 1: both paths start at the same root.
	lca := lcaLen - 1

	out := make([]int, 0, len(pathA)+len(pathB)-lcaLen)
	out = append(out, pathA[lca])
	for i := len(pathA) - 1; i > lca; i-- {
		out = append(out, pathA[i])
	}
	for i := lca + 1; i < len(pathB); i++ {
		out = append(out, pathB[i])
	}
	return out, nil
}

// HistogramEntry is one (generation, distance) -> count row of a
// meioses/generation distribution.
type HistogramEntry struct {
	Generation int
	Distance   int
	Count      int
}

// MeiosesGenerationDistribution tabulates, for a focal individual i and
// an optional generation cap (pass -1 for no cap),
// (member.Generation, MeiosisDist(i, member)) -> count over every
// member of i's pedigree, returned sorted by (generation, distance).
func MeiosesGenerationDistribution(pop *Population, focalIdx int, generationCap int) ([]HistogramEntry, error) {
	focal := pop.At(focalIdx)
	if focal.PedigreeID == 0 {
		return nil, newError(InvalidState, "pid %d has no pedigree", focal.PID)
	}
	ped := findPedigreeByID(pop, focal.PedigreeID)

	counts := make(map[[2]int]int)
	for _, memberIdx := range ped.Members {
		member := pop.At(memberIdx)
		if generationCap >= 0 && member.Generation > generationCap {
			continue
		}
		dist, err := MeiosisDistIn(ped, focalIdx, memberIdx)
		if err != nil {
			return nil, err
		}
		counts[[2]int{member.Generation, dist}]++
	}

	out := make([]HistogramEntry, 0, len(counts))
	for key, count := range counts {
		out = append(out, HistogramEntry{Generation: key[0], Distance: key[1], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Generation != out[j].Generation {
			return out[i].Generation < out[j].Generation
		}
		return out[i].Distance < out[j].Distance
	})
	return out, nil
}

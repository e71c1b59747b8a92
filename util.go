package malan

import "container/heap"

// scoredIdx pairs an arena index with a ranking metric.
type scoredIdx struct {
	idx   int
	score int
}

// minScoredHeap is a container/heap.Interface ordering scoredIdx by
// ascending score, so its root is always the current minimum.
type minScoredHeap []scoredIdx

func (h minScoredHeap) Len() int            { return len(h) }
func (h minScoredHeap) Less(i, j int) bool  { return h[i].score < h[j].score }
func (h minScoredHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minScoredHeap) Push(x interface{}) { *h = append(*h, x.(scoredIdx)) }
func (h *minScoredHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// topKByScore returns the arena indices of the k entries with the
// greatest score, in descending-score order. Keeps a fixed-size min-heap
// of the k best-so-far and only displaces the current minimum when a
// strictly better candidate is seen. Among entries tying at the cut-off
// score, which ones are kept follows heap order, not insertion order.
func topKByScore(idx []int, score []int, k int) []int {
	if k > len(idx) {
		k = len(idx)
	}
	if k == 0 {
		return nil
	}

	h := make(minScoredHeap, k)
	for i := 0; i < k; i++ {
		h[i] = scoredIdx{idx: idx[i], score: score[i]}
	}
	heap.Init(&h)

	for i := k; i < len(idx); i++ {
		if score[i] > h[0].score {
			h[0] = scoredIdx{idx: idx[i], score: score[i]}
			heap.Fix(&h, 0)
		}
	}

	out := make([]int, k)
	for i, v := range h {
		out[i] = v.idx
	}
	// Sort descending by score for a stable, presentable order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && h[j].score > h[j-1].score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
			h[j], h[j-1] = h[j-1], h[j]
		}
	}
	return out
}

// smallestPid returns the Individual among candidates (arena indices)
// with the smallest pid. Used to pick a deterministic Pedigree.root when
// a fixed-generation simulation leaves multiple founders in the oldest
// generation.
func smallestPid(pop *Population, candidates []int) int {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if pop.At(c).PID < pop.At(best).PID {
			best = c
		}
	}
	return best
}

// MostProlificFathers returns the pids of the k Individuals with the
// most recorded children, most-children-first, over a Pedigree's
// members.
func MostProlificFathers(ped *Pedigree, k int) []int {
	idx := append([]int(nil), ped.Members...)
	score := make([]int, len(idx))
	pop := ped.Population()
	for i, memberIdx := range idx {
		score[i] = pop.At(memberIdx).NumChildren()
	}
	winners := topKByScore(idx, score, k)
	pids := make([]int, len(winners))
	for i, w := range winners {
		pids[i] = pop.At(w).PID
	}
	return pids
}

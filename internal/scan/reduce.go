package scan

import (
	"container/heap"
	"sort"
)

// reduce merges an assignment down to at most n hosts. The n heaviest
// hosts survive, since they already hold the most data and dropping
// them would cost the most locality; every other host is absorbed whole
// into whichever survivor is currently lightest. Greedy and O(H log H),
// not optimal, and not trying to be.
//
// Heap entries own cloned workloads, so the input assignment is left
// untouched and a destination can be re-inserted after mutation without
// aliasing the original.
func reduce(a *assignment, n int) *assignment {
	if len(a.order) == 0 || n >= len(a.order) {
		return a
	}

	// Max-ordered queue of everything assigned so far.
	candidates := make(byBytesDesc, 0, len(a.order))
	for _, host := range a.order {
		candidates = append(candidates, a.byHost[host].clone())
	}
	heap.Init(&candidates)

	// The n heaviest become the survivors, min-ordered so the lightest
	// is always on top.
	survivors := make(byBytesAsc, 0, n)
	for i := 0; i < n && candidates.Len() > 0; i++ {
		survivors = append(survivors, heap.Pop(&candidates).(*hostWorkload))
	}
	heap.Init(&survivors)

	for candidates.Len() > 0 {
		absorbed := heap.Pop(&candidates).(*hostWorkload)
		dest := heap.Pop(&survivors).(*hostWorkload)
		dest.absorb(absorbed)
		heap.Push(&survivors, dest)
	}

	out := newAssignment()
	final := []*hostWorkload(survivors)
	sort.Slice(final, func(i, j int) bool { return final[i].seq < final[j].seq })
	for _, w := range final {
		out.byHost[w.host] = w
		out.order = append(out.order, w.host)
	}
	return out
}

// byBytesDesc pops the heaviest workload first. Both heaps break byte
// ties on first-assignment sequence; the ordering must stay total for
// the pass to terminate deterministically.
type byBytesDesc []*hostWorkload

func (h byBytesDesc) Len() int { return len(h) }
func (h byBytesDesc) Less(i, j int) bool {
	if h[i].bytes != h[j].bytes {
		return h[i].bytes > h[j].bytes
	}
	return h[i].seq < h[j].seq
}
func (h byBytesDesc) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *byBytesDesc) Push(x any)   { *h = append(*h, x.(*hostWorkload)) }
func (h *byBytesDesc) Pop() any {
	old := *h
	n := len(old)
	w := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return w
}

// byBytesAsc pops the lightest workload first.
type byBytesAsc []*hostWorkload

func (h byBytesAsc) Len() int { return len(h) }
func (h byBytesAsc) Less(i, j int) bool {
	if h[i].bytes != h[j].bytes {
		return h[i].bytes < h[j].bytes
	}
	return h[i].seq < h[j].seq
}
func (h byBytesAsc) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *byBytesAsc) Push(x any)   { *h = append(*h, x.(*hostWorkload)) }
func (h *byBytesAsc) Pop() any {
	old := *h
	n := len(old)
	w := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return w
}

// Package window implements the window scanner: a lockstep merge of
// several query terms' position lists within one document, counting
// ordered/unordered co-occurrence windows of a fixed width.
//
// Grounded on the original src/w_scanner.cpp's TermPos/WScanner design
// (a merged, position-sorted stream of (term_index, position) pairs
// swept with two pointers) and on the bits-and-blooms/bitset idiom for
// the original's std::bitset<32> "seen" mask.
package window

import (
	"container/heap"

	"github.com/bits-and-blooms/bitset"
)

// TermPos is one occurrence: term_idx is the index of the term within
// the caller's ordered list of query terms (not a TermId), pos is its
// position within the document.
type TermPos struct {
	TermIdx int
	Pos     uint32
}

// mergeHeap merges several ascending position lists into one
// position-ordered stream, mirroring the original scanner's min-heap of
// (term_idx, position) tuples.
type mergeItem struct {
	tp     TermPos
	list   int
	offset int
}

type mergeHeap []mergeItem

func (h mergeHeap) Len() int            { return len(h) }
func (h mergeHeap) Less(i, j int) bool  { return h[i].tp.Pos < h[j].tp.Pos }
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(mergeItem)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Merge combines positions (one sorted ascending slice per query term)
// into a single position-ordered []TermPos stream.
func Merge(positions [][]uint32) []TermPos {
	h := make(mergeHeap, 0, len(positions))
	for i, list := range positions {
		if len(list) > 0 {
			h = append(h, mergeItem{tp: TermPos{TermIdx: i, Pos: list[0]}, list: i, offset: 0})
		}
	}
	heap.Init(&h)

	out := make([]TermPos, 0)
	for h.Len() > 0 {
		top := heap.Pop(&h).(mergeItem)
		out = append(out, top.tp)
		next := top.offset + 1
		if next < len(positions[top.list]) {
			heap.Push(&h, mergeItem{tp: TermPos{TermIdx: top.list, Pos: positions[top.list][next]}, list: top.list, offset: next})
		}
	}
	return out
}

// Count sweeps the merged position stream and counts qualifying windows
// of width W. When ordered is true, a window only qualifies if its
// occurrences include a strictly increasing-by-term-index subsequence
// covering every term 0..k-1. When overlap is true the scan advances one
// candidate start at a time; otherwise it jumps past the last window
// examined.
func Count(positions [][]uint32, w uint32, ordered, overlap bool) int {
	k := len(positions)
	if k == 0 || w == 0 {
		return 0
	}
	merged := Merge(positions)
	n := len(merged)
	count := 0

	i := 0
	for i < n {
		p := merged[i].Pos
		j := i
		for j < n && merged[j].Pos < p+w {
			j++
		}
		if windowValid(merged[i:j], k, ordered) {
			count++
		}
		if overlap {
			i++
		} else {
			i = j
		}
	}
	return count
}

func windowValid(window []TermPos, k int, ordered bool) bool {
	seen := bitset.New(uint(k))
	for _, tp := range window {
		seen.Set(uint(tp.TermIdx))
	}
	if int(seen.Count()) != k {
		return false
	}
	if !ordered {
		return true
	}
	expected := 0
	for _, tp := range window {
		if tp.TermIdx == expected {
			expected++
			if expected == k {
				return true
			}
		}
	}
	return false
}

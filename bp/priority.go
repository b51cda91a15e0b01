// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bp

import (
	"github.com/akualab/daigo"
	"github.com/emirpasic/gods/trees/binaryheap"
)

// heapItem is one snapshot of an edge's residual, identified by the
// edge's (variable index, neighbor position) coordinates plus the
// incident factor's index I, used only for the lexicographic
// tie-break.
type heapItem struct {
	i, pos, I int
	residual  float64
}

// residualComparator orders heapItems so the largest residual sorts
// first (binaryheap.Pop removes the item the comparator ranks
// smallest, so larger residuals compare as "smaller"). Equal residuals
// break ties by ascending (i, I), the decision recorded in DESIGN.md
// for spec.md §9's open question on SEQMAX tie-breaking.
func residualComparator(a, b interface{}) int {
	x, y := a.(heapItem), b.(heapItem)
	if x.residual != y.residual {
		if x.residual > y.residual {
			return -1
		}
		return 1
	}
	if x.i != y.i {
		return x.i - y.i
	}
	return x.I - y.I
}

// residualHeap is SEQMAX's mutable max-heap over edge residuals,
// grounded on libDAI's BP::findMaxResidual (bp.h) and spec.md's design
// note calling for "a mutable max-heap ... with positional
// back-pointers". github.com/emirpasic/gods/trees/binaryheap supplies
// a plain binary heap with no native decrease-key, so update does not
// mutate an existing entry in place: it pushes a fresh heapItem and
// leaves the stale one behind. max discards stale entries lazily by
// comparing each popped item's residual against the edge's live
// residual in Engine.edges.
type residualHeap struct {
	h      *binaryheap.Heap
	eng    *Engine
	primed bool // true once every edge's residual has been seeded by a real calcNewMessage
}

// newResidualHeap allocates an empty residualHeap. capacity is advisory
// only (gods' binaryheap grows as needed); it is accepted to document
// the expected size at call sites.
func newResidualHeap(capacity int) *residualHeap {
	return &residualHeap{h: binaryheap.NewWith(residualComparator)}
}

// reset discards all entries and repopulates the heap from every
// edge's current residual, binding eng so later calls to max can check
// liveness. Called from Engine.Init and Engine.InitVars. The residuals
// pushed here are just-reset zeros; they are not real priorities until
// runSeqMax's priming pass (see primed) replaces them with the output of
// an actual calcNewMessage, following libDAI's bp.cpp run(), which
// computes every message once before entering the SEQMAX loop proper.
func (h *residualHeap) reset(e *Engine) {
	h.eng = e
	h.primed = false
	h.h.Clear()
	for i := range e.edges {
		for pos, ep := range e.edges[i] {
			I := e.fg.NbV(i)[pos].Node
			h.h.Push(heapItem{i: i, pos: pos, I: I, residual: ep.residual})
		}
	}
}

// update records edge (i, pos)'s new residual by pushing a fresh
// heapItem. Any earlier heapItem for the same edge is left in the heap
// and will be discarded as stale the next time it surfaces in max.
func (h *residualHeap) update(e *Engine, i, pos int, residual float64) {
	I := e.fg.NbV(i)[pos].Node
	h.h.Push(heapItem{i: i, pos: pos, I: I, residual: residual})
}

// max pops and returns the coordinates of the edge with the
// currently-largest residual, skipping stale entries along the way.
func (h *residualHeap) max() (i, pos int, err error) {
	for {
		v, ok := h.h.Pop()
		if !ok {
			return 0, 0, daigo.ErrInternal("residualHeap: empty, no edge to update")
		}
		item := v.(heapItem)
		if item.residual == h.eng.edges[item.i][item.pos].residual {
			return item.i, item.pos, nil
		}
		// stale: a later update superseded this snapshot.
	}
}

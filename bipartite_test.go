// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import "testing"

// TestBipartiteGraphDualPositions checks the O(1) back-pointer
// invariant of spec.md §9: nb2(I)[pos].Node == i implies
// nb1(i)[nb2(I)[pos].Dual] names factor I.
func TestBipartiteGraphDualPositions(t *testing.T) {
	// Two factors: factor 0 touches variables 0,1; factor 1 touches
	// variables 1,2.
	g := NewBipartiteGraph(3, [][]int{{0, 1}, {1, 2}})

	for I := 0; I < g.NrNodes2(); I++ {
		for pos, nb := range g.Nb2(I) {
			i := nb.Node
			back := g.Nb1(i)[nb.Dual]
			if back.Node != I {
				t.Errorf("factor %d, pos %d: back-pointer points to factor %d, want %d", I, pos, back.Node, I)
			}
		}
	}
}

func TestBipartiteGraphNeighborCounts(t *testing.T) {
	g := NewBipartiteGraph(3, [][]int{{0, 1}, {1, 2}})
	if len(g.Nb1(1)) != 2 {
		t.Errorf("variable 1 should be incident to 2 factors, got %d", len(g.Nb1(1)))
	}
	if len(g.Nb1(0)) != 1 {
		t.Errorf("variable 0 should be incident to 1 factor, got %d", len(g.Nb1(0)))
	}
}

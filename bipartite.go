// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

// Neighbor names one endpoint of an incidence edge together with the
// position of this edge within the opposite node's own neighbor list,
// giving O(1) lookup in either direction without node-to-node
// pointers (design note, spec.md §9).
type Neighbor struct {
	// Node is the index of the neighboring node (on the opposite
	// side of the bipartition).
	Node int
	// Dual is the position of this edge within Node's own neighbor
	// list, i.e. nb(Node)[Dual].Node == the node this Neighbor was
	// reached from.
	Dual int
}

// BipartiteGraph holds two neighbor-list arrays: nb1[i] lists, for
// node i on side 1, the side-2 nodes it is incident to (and vice
// versa for nb2). It never mutates once built; FactorGraph builds
// exactly one BipartiteGraph at construction.
type BipartiteGraph struct {
	nb1 [][]Neighbor // side 1 (variables) -> side 2 (factors)
	nb2 [][]Neighbor // side 2 (factors) -> side 1 (variables)
}

// NewBipartiteGraph builds the incidence structure from, for each
// side-2 node I, the list of side-1 nodes it touches (in the order
// that determines canonical neighbor position -- for a FactorGraph
// this is factors[I].Vars' label-ascending order). n1 is the number
// of side-1 nodes.
func NewBipartiteGraph(n1 int, incidences [][]int) BipartiteGraph {
	nb1 := make([][]Neighbor, n1)
	nb2 := make([][]Neighbor, len(incidences))

	for I, vars := range incidences {
		nb2[I] = make([]Neighbor, len(vars))
		for pos, i := range vars {
			dual := len(nb1[i])
			nb1[i] = append(nb1[i], Neighbor{Node: I, Dual: pos})
			nb2[I][pos] = Neighbor{Node: i, Dual: dual}
		}
	}
	return BipartiteGraph{nb1: nb1, nb2: nb2}
}

// NrNodes1 is the number of side-1 (variable) nodes.
func (g BipartiteGraph) NrNodes1() int { return len(g.nb1) }

// NrNodes2 is the number of side-2 (factor) nodes.
func (g BipartiteGraph) NrNodes2() int { return len(g.nb2) }

// Nb1 returns the side-2 neighbors of side-1 node i, in the order
// they were added (ascending side-2 index, i.e. ascending factor
// index for a FactorGraph).
func (g BipartiteGraph) Nb1(i int) []Neighbor { return g.nb1[i] }

// Nb2 returns the side-1 neighbors of side-2 node I, in the order
// they were added (== factors[I].Vars' label-ascending order, for a
// FactorGraph).
func (g BipartiteGraph) Nb2(I int) []Neighbor { return g.nb2[I] }

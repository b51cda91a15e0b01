// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bp

import (
	"testing"

	"github.com/akualab/daigo"
	"gonum.org/v1/gonum/graph/simple"
)

// chainTopology renders a chain of n variables as a gonum undirected
// graph, the way the teacher's model/hmm/network.go represents state
// adjacency, so the tree property (edges == nodes-1) can be checked
// with the same library rather than hand-rolled bookkeeping.
func chainTopology(n int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < n-1; i++ {
		g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(i + 1)})
	}
	return g
}

func countEdges(g *simple.UndirectedGraph) int {
	it := g.Edges()
	n := 0
	for it.Next() {
		n++
	}
	return n
}

func TestChainTopologyIsATree(t *testing.T) {
	g := chainTopology(5)
	if got, want := g.Nodes().Len(), 5; got != want {
		t.Fatalf("Nodes().Len() = %d, want %d", got, want)
	}
	if got, want := countEdges(g), 4; got != want {
		t.Errorf("edge count = %d, want %d (a tree has nodes-1 edges)", got, want)
	}
}

// TestBPExactOnTree checks that loopy BP reaches the brute-force exact
// marginal on an acyclic (chain) factor graph, independent of the
// symmetric S3 scenario: an asymmetric chain of 3 binary variables
// with two distinct pairwise factors.
func TestBPExactOnTree(t *testing.T) {
	x0 := daigo.NewVariable(0, 2)
	x1 := daigo.NewVariable(1, 2)
	x2 := daigo.NewVariable(2, 2)
	f01 := mustFactor(t, daigo.NewVarSet(x0, x1), []float64{2, 1, 1, 3})
	f12 := mustFactor(t, daigo.NewVarSet(x1, x2), []float64{1, 1, 2, 4})
	fg := mustGraph(t, []daigo.Variable{x0, x1, x2}, []daigo.Factor{f01, f12})

	// Confirm the topology really is a tree before trusting BP's exactness on it.
	topo := chainTopology(3)
	if countEdges(topo) != topo.Nodes().Len()-1 {
		t.Fatal("test setup error: chain topology is not a tree")
	}

	p := props(t, "tol", 1e-9, "maxiter", 50, "logdomain", false, "updates", "SEQFIX")
	e, err := New(fg, p)
	daigo.CheckError(t, err)
	_, err = e.Run()
	daigo.CheckError(t, err)

	// Brute-force joint over (x0,x1,x2), mixed-radix x0 fastest-varying.
	joint := make([]float64, 8)
	for x2s := 0; x2s < 2; x2s++ {
		for x1s := 0; x1s < 2; x1s++ {
			for x0s := 0; x0s < 2; x0s++ {
				state := x0s + 2*x1s + 4*x2s
				joint[state] = f01.Values.At(x0s+2*x1s) * f12.Values.At(x1s+2*x2s)
			}
		}
	}
	var sum float64
	for _, v := range joint {
		sum += v
	}
	wantX0 := []float64{0, 0}
	for x2s := 0; x2s < 2; x2s++ {
		for x1s := 0; x1s < 2; x1s++ {
			for x0s := 0; x0s < 2; x0s++ {
				wantX0[x0s] += joint[x0s+2*x1s+4*x2s] / sum
			}
		}
	}

	got, err := e.BeliefV(fg.VarIndex(0))
	daigo.CheckError(t, err)
	daigo.CompareSliceFloat(t, wantX0, got.Values(), "exact belief on tree (x0)", 1e-9)
}

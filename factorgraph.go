// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import (
	"fmt"

	"github.com/golang/glog"
)

// FactorGraph is the bipartite model handed to the BP engine: a set
// of Variables, a set of Factors over subsets of those Variables, and
// the incidence between them. It is immutable once constructed; the
// engine never mutates it during inference.
type FactorGraph struct {
	vars    []Variable
	factors []Factor
	g       BipartiteGraph
	idx     *indexCache
}

// NewFactorGraph validates and builds a FactorGraph. Every variable
// referenced by a factor must be present in vars (by label, with
// matching cardinality); violations fail with InvalidFactorGraph.
func NewFactorGraph(vars []Variable, factors []Factor) (*FactorGraph, error) {
	byLabel := make(map[int64]Variable, len(vars))
	for _, v := range vars {
		if existing, ok := byLabel[v.Label]; ok && existing.States != v.States {
			return nil, errInvalidFactorGraph(
				fmt.Sprintf("variable label %d has conflicting cardinalities %d and %d",
					v.Label, existing.States, v.States))
		}
		byLabel[v.Label] = v
	}

	varIndex := make(map[int64]int, len(vars))
	sorted := append([]Variable{}, vars...)
	// Stable de-dup + sort by label for a canonical variable index.
	dedup := make([]Variable, 0, len(sorted))
	seen := make(map[int64]bool, len(sorted))
	for _, v := range sorted {
		if seen[v.Label] {
			continue
		}
		seen[v.Label] = true
		dedup = append(dedup, v)
	}
	sorted = dedup
	sortVariables(sorted)
	for i, v := range sorted {
		varIndex[v.Label] = i
	}

	incidences := make([][]int, len(factors))
	for I, f := range factors {
		idx := make([]int, f.Vars.Len())
		for pos, v := range f.Vars.Vars() {
			gv, ok := byLabel[v.Label]
			if !ok {
				return nil, errInvalidFactorGraph(
					fmt.Sprintf("factor %d references variable %s not present in graph", I, v))
			}
			if gv.States != v.States {
				return nil, errInvalidFactorGraph(
					fmt.Sprintf("factor %d variable %s cardinality mismatch: graph has %d, factor has %d",
						I, v, gv.States, v.States))
			}
			i, ok := varIndex[v.Label]
			if !ok {
				return nil, errInternal("variable index missing after validation")
			}
			idx[pos] = i
		}
		incidences[I] = idx
	}

	g := NewBipartiteGraph(len(sorted), incidences)

	glog.Infof("New FactorGraph: %d variables, %d factors, %d incidences.",
		len(sorted), len(factors), countEdges(incidences))

	return &FactorGraph{vars: sorted, factors: factors, g: g, idx: newIndexCache(0)}, nil
}

func countEdges(incidences [][]int) int {
	n := 0
	for _, l := range incidences {
		n += len(l)
	}
	return n
}

func sortVariables(vs []Variable) {
	// Insertion sort is plenty for the small variable counts typical
	// of a factor graph and avoids importing sort for one call site
	// used only here and in VarSet -- kept consistent with varset.go
	// by delegating to the same comparator type.
	s := variablesByLabel(vs)
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s.Less(j, j-1); j-- {
			s.Swap(j, j-1)
		}
	}
}

// NrVars is the number of variables.
func (fg *FactorGraph) NrVars() int { return len(fg.vars) }

// NrFactors is the number of factors.
func (fg *FactorGraph) NrFactors() int { return len(fg.factors) }

// Var returns the i'th variable (in canonical, label-ascending
// index).
func (fg *FactorGraph) Var(i int) Variable { return fg.vars[i] }

// FactorAt returns the I'th factor.
func (fg *FactorGraph) FactorAt(I int) Factor { return fg.factors[I] }

// NbV returns the factors incident to variable i, each carrying the
// position of variable i within that factor's own variable list.
func (fg *FactorGraph) NbV(i int) []Neighbor { return fg.g.Nb1(i) }

// NbF returns the variables incident to factor I, in the canonical
// (label-ascending) order used to index FactorAt(I).Values.
func (fg *FactorGraph) NbF(I int) []Neighbor { return fg.g.Nb2(I) }

// EdgeIndex returns π_{F_I.Vars→{x_i}}, the precomputed mapping from
// joint states of factor I to states of variable i (spec.md §3's
// "index" field), memoized across repeated calls for the life of the
// graph.
func (fg *FactorGraph) EdgeIndex(i, I int) []int {
	return fg.idx.indexFor(fg.factors[I].Vars, NewVarSet(fg.vars[i]))
}

// VarIndex returns the canonical index of the variable with the given
// label, or -1 if absent.
func (fg *FactorGraph) VarIndex(label int64) int {
	for i, v := range fg.vars {
		if v.Label == label {
			return i
		}
	}
	return -1
}

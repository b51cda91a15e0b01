// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import "sort"

// VarSet is an ordered, deduplicated set of Variables, sorted by
// ascending Label. The joint state space of a VarSet has size
// NrStates(); a joint state decomposes into per-variable states using
// a mixed-radix convention where the variable with the smallest label
// is the fastest-varying digit.
type VarSet struct {
	vars []Variable
}

// NewVarSet builds a VarSet from the given variables, sorting by
// label and dropping duplicates (by label).
func NewVarSet(vars ...Variable) VarSet {
	cp := make([]Variable, len(vars))
	copy(cp, vars)
	sort.Sort(variablesByLabel(cp))

	out := cp[:0]
	var last *Variable
	for i := range cp {
		if last != nil && last.Label == cp[i].Label {
			continue
		}
		out = append(out, cp[i])
		last = &cp[i]
	}
	return VarSet{vars: out}
}

// Vars returns the variables in label-ascending order. The returned
// slice must not be mutated.
func (s VarSet) Vars() []Variable { return s.vars }

// Len is the number of distinct variables in the set.
func (s VarSet) Len() int { return len(s.vars) }

// NrStates is the size of the joint state space: the product of all
// member cardinalities. An empty VarSet has exactly one joint state.
func (s VarSet) NrStates() int {
	n := 1
	for _, v := range s.vars {
		n *= v.States
	}
	return n
}

// Index returns the position of v within the set's label order, or -1
// if v is not a member.
func (s VarSet) Index(v Variable) int {
	for i, w := range s.vars {
		if w.Label == v.Label {
			return i
		}
	}
	return -1
}

// Contains reports whether v is a member of the set.
func (s VarSet) Contains(v Variable) bool { return s.Index(v) >= 0 }

// Subset reports whether every variable of sub is also a member of s.
func (s VarSet) Subset(sub VarSet) bool {
	for _, v := range sub.vars {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// Union returns the set union of s and o.
func (s VarSet) Union(o VarSet) VarSet {
	all := append(append([]Variable{}, s.vars...), o.vars...)
	return NewVarSet(all...)
}

// Without returns s with v removed, if present.
func (s VarSet) Without(v Variable) VarSet {
	out := make([]Variable, 0, len(s.vars))
	for _, w := range s.vars {
		if w.Label != v.Label {
			out = append(out, w)
		}
	}
	return VarSet{vars: out}
}

// decode expands a joint state s of the receiver into per-variable
// states, smallest label fastest-varying.
func (s VarSet) decode(state int) []int {
	per := make([]int, len(s.vars))
	rem := state
	for i, v := range s.vars {
		per[i] = rem % v.States
		rem /= v.States
	}
	return per
}

// encode recomposes a joint state of the receiver from per-variable
// states (same order as s.vars), smallest label fastest-varying.
func (s VarSet) encode(per []int) int {
	state := 0
	mult := 1
	for i, v := range s.vars {
		state += per[i] * mult
		mult *= v.States
	}
	return state
}

// IndexFor computes π_{s→sub}: for every joint state of the receiver,
// the joint state implied for sub. sub must be a subset of s (not
// checked here for performance; callers are expected to have
// validated scope containment, e.g. via Subset).
func (s VarSet) IndexFor(sub VarSet) []int {
	n := s.NrStates()
	out := make([]int, n)

	// Precompute, for each sub variable, its position within s.
	pos := make([]int, len(sub.vars))
	for j, v := range sub.vars {
		pos[j] = s.Index(v)
	}

	for state := 0; state < n; state++ {
		per := s.decode(state)
		subPer := make([]int, len(sub.vars))
		for j := range sub.vars {
			subPer[j] = per[pos[j]]
		}
		out[state] = sub.encode(subPer)
	}
	return out
}

// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import "fmt"

// Factor is a non-negative function over the joint state space of
// Vars, represented densely as Values. len(Values) must equal
// Vars.NrStates().
type Factor struct {
	Vars   VarSet
	Values Prob
}

// NewFactor builds a Factor, validating the length invariant.
func NewFactor(vars VarSet, values []float64) (Factor, error) {
	n := vars.NrStates()
	if len(values) != n {
		return Factor{}, errInvalidFactorGraph(
			fmt.Sprintf("factor over %d joint states got %d values", n, len(values)))
	}
	return Factor{Vars: vars, Values: NewProb(values)}, nil
}

// Broadcast expands msg (indexed by states of a single variable) up
// to a factor-shaped joint state space, using idx = vars.IndexFor(VarSet{that variable}).
// Exported for use by the bp package's message-update rule (spec.md
// §4.2).
func Broadcast(msg Prob, idx []int) Prob {
	out := make([]float64, len(idx))
	src := msg.Values()
	for s, j := range idx {
		out[s] = src[j]
	}
	return Prob{Domain: msg.Domain, v: out}
}

// RawProb wraps an already-computed values slice as a Prob of the
// given Domain, without copying. Exported for collaborator packages
// (bp) that build vectors via Broadcast/Marginalize and want to avoid
// a redundant copy.
func RawProb(domain Domain, values []float64) Prob {
	return Prob{Domain: domain, v: values}
}

// multiplyIn returns f.Values pointwise-multiplied (in the values'
// domain) by msg broadcast from variable v's state space up to f's
// joint state space via idx.
func (f Factor) multiplyIn(msg Prob, idx []int) Prob {
	return f.Values.Mul(Broadcast(msg, idx))
}

// Marginalize sums (Linear) or log-sum-exps (Log) a factor-shaped
// vector (indexed by the joint states of vars) down to the states of
// keep, returning a vector of length keep.States. Exported for the bp
// package's message-update rule (spec.md §4.2).
func Marginalize(vars VarSet, values Prob, keep Variable) Prob {
	return MarginalizeSet(vars, values, NewVarSet(keep))
}

// MarginalizeSet sums (Linear) or log-sum-exps (Log) a factor-shaped
// vector (indexed by the joint states of vars) down to the joint
// states of keep, which must be a subset of vars. Used for belief
// readout over a VarSet strictly smaller than some factor's full
// scope (spec.md §4.7).
func MarginalizeSet(vars VarSet, values Prob, keep VarSet) Prob {
	n := keep.NrStates()
	domain := values.Domain
	src := values.Values()
	idx := vars.IndexFor(keep)

	if domain == Linear {
		out := make([]float64, n)
		for state, val := range src {
			out[idx[state]] += val
		}
		return Prob{Domain: Linear, v: out}
	}

	// Log domain: accumulate per-target-state log-sum-exp using the
	// standard max-subtraction trick, done in two passes since the
	// target bucket for each source state is known up front.
	maxes := make([]float64, n)
	for i := range maxes {
		maxes[i] = negInf
	}
	for state, val := range src {
		k := idx[state]
		if val > maxes[k] {
			maxes[k] = val
		}
	}
	sums := make([]float64, n)
	for state, val := range src {
		k := idx[state]
		if maxes[k] == negInf {
			continue
		}
		sums[k] += expSafe(val - maxes[k])
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if maxes[i] == negInf {
			out[i] = negInf
			continue
		}
		out[i] = maxes[i] + logSafe(sums[i])
	}
	return Prob{Domain: Log, v: out}
}

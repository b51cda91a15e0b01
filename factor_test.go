// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import "testing"

func TestNewFactorLengthMismatch(t *testing.T) {
	vars := NewVarSet(NewVariable(1, 2), NewVariable(2, 2))
	_, err := NewFactor(vars, []float64{1, 2, 3})
	if err == nil {
		t.Fatal("expected InvalidFactorGraph error")
	}
	if kind, ok := KindOf(err); !ok || kind != InvalidFactorGraph {
		t.Errorf("expected InvalidFactorGraph, got %v", err)
	}
}

func TestBroadcast(t *testing.T) {
	v1, v2 := NewVariable(1, 2), NewVariable(2, 3)
	scope := NewVarSet(v1, v2)
	idx := scope.IndexFor(NewVarSet(v2))

	msg := NewProb([]float64{10, 20, 30}) // indexed by v2's 3 states
	out := Broadcast(msg, idx)
	if out.Len() != scope.NrStates() {
		t.Fatalf("Broadcast length = %d, want %d", out.Len(), scope.NrStates())
	}
	for state := 0; state < scope.NrStates(); state++ {
		per := scope.decode(state)
		want := msg.At(per[scope.Index(v2)])
		if out.At(state) != want {
			t.Errorf("Broadcast[%d] = %v, want %v", state, out.At(state), want)
		}
	}
}

// TestMarginalize checks S2's exact-marginal scenario: pairwise factor
// [[1,2],[3,4]] row-major over (x0,x1) marginalizes to b(x0)=[4,6],
// b(x1)=[3,7] before normalization.
func TestMarginalize(t *testing.T) {
	x0, x1 := NewVariable(0, 2), NewVariable(1, 2)
	scope := NewVarSet(x0, x1)
	// x0 has the smaller label, so it is the fastest-varying digit: the
	// flat values [1,2,3,4] decode as (x0,x1) = (0,0)=1,(1,0)=2,(0,1)=3,(1,1)=4,
	// which is exactly the row-major layout of [[1,2],[3,4]].
	values := NewProb([]float64{1, 2, 3, 4})

	m0 := Marginalize(scope, values, x0)
	CompareSliceFloat(t, []float64{4, 6}, m0.Values(), "marginal over x0", 1e-12)

	m1 := Marginalize(scope, values, x1)
	CompareSliceFloat(t, []float64{3, 7}, m1.Values(), "marginal over x1", 1e-12)
}

func TestMarginalizeSetEqualsMarginalizeForSingleVar(t *testing.T) {
	x0, x1 := NewVariable(0, 2), NewVariable(1, 2)
	scope := NewVarSet(x0, x1)
	values := NewProb([]float64{1, 3, 2, 4})

	a := Marginalize(scope, values, x0)
	b := MarginalizeSet(scope, values, NewVarSet(x0))
	CompareSliceFloat(t, a.Values(), b.Values(), "Marginalize vs MarginalizeSet", 1e-12)
}

func TestMarginalizeLogDomain(t *testing.T) {
	x0, x1 := NewVariable(0, 2), NewVariable(1, 2)
	scope := NewVarSet(x0, x1)
	values := NewProb([]float64{1, 3, 2, 4}).ToLog()

	m0 := Marginalize(scope, values, x0).ToLinear()
	CompareSliceFloat(t, []float64{3, 7}, m0.Values(), "marginal over x0 (log domain)", 1e-9)
}

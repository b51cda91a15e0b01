// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bp

import (
	"testing"

	"github.com/akualab/daigo"
)

func mustGraph(t *testing.T, vars []daigo.Variable, factors []daigo.Factor) *daigo.FactorGraph {
	t.Helper()
	fg, err := daigo.NewFactorGraph(vars, factors)
	daigo.CheckError(t, err)
	return fg
}

func mustFactor(t *testing.T, vars daigo.VarSet, values []float64) daigo.Factor {
	t.Helper()
	f, err := daigo.NewFactor(vars, values)
	daigo.CheckError(t, err)
	return f
}

func props(t *testing.T, kv ...interface{}) Properties {
	t.Helper()
	p, err := ParseProperties(daigo.NewPropertySet(kv...))
	daigo.CheckError(t, err)
	return p
}

// S1: single binary variable, single unary factor [0.3, 0.7]. After
// any positive number of iterations, the belief equals [0.3, 0.7] and
// logZ = log(1.0) = 0.
func TestScenarioS1(t *testing.T) {
	x0 := daigo.NewVariable(0, 2)
	f := mustFactor(t, daigo.NewVarSet(x0), []float64{0.3, 0.7})
	fg := mustGraph(t, []daigo.Variable{x0}, []daigo.Factor{f})

	p := props(t, "tol", 1e-9, "maxiter", 1, "logdomain", false, "updates", "SEQFIX")
	e, err := New(fg, p)
	daigo.CheckError(t, err)

	_, err = e.Run()
	daigo.CheckError(t, err)

	b, err := e.BeliefV(0)
	daigo.CheckError(t, err)
	daigo.CompareSliceFloat(t, []float64{0.3, 0.7}, b.Values(), "S1 belief", 1e-9)

	logZ, err := e.LogZ()
	daigo.CheckError(t, err)
	daigo.CompareFloats(t, 0, logZ, "S1 logZ", 1e-9)
}

// S2: two binary variables with pairwise factor [[1,2],[3,4]]
// (row-major over (x0,x1)) and no unaries. Exact marginals:
// b(x0)=[0.4,0.6], b(x1)=[0.3,0.7], reached within tol=1e-9 in at most
// 2 iterations under SEQFIX.
func TestScenarioS2(t *testing.T) {
	x0, x1 := daigo.NewVariable(0, 2), daigo.NewVariable(1, 2)
	f := mustFactor(t, daigo.NewVarSet(x0, x1), []float64{1, 2, 3, 4})
	fg := mustGraph(t, []daigo.Variable{x0, x1}, []daigo.Factor{f})

	p := props(t, "tol", 1e-9, "maxiter", 2, "logdomain", false, "updates", "SEQFIX")
	e, err := New(fg, p)
	daigo.CheckError(t, err)

	_, err = e.Run()
	daigo.CheckError(t, err)

	if e.Iterations() > 2 {
		t.Errorf("S2 took %d iterations, want <= 2", e.Iterations())
	}

	b0, err := e.BeliefV(fg.VarIndex(0))
	daigo.CheckError(t, err)
	daigo.CompareSliceFloat(t, []float64{0.4, 0.6}, b0.Values(), "S2 belief x0", 1e-9)

	b1, err := e.BeliefV(fg.VarIndex(1))
	daigo.CheckError(t, err)
	daigo.CompareSliceFloat(t, []float64{0.3, 0.7}, b1.Values(), "S2 belief x1", 1e-9)
}

// TestScenarioS2SeqMax runs S2's asymmetric pairwise factor under
// SEQMAX. Unlike S3's symmetric chain, S2's exact marginals
// ([0.4,0.6], [0.3,0.7]) differ from the uniform initialization, so this
// guards against a SEQMAX scheduler that never actually computes a
// message and just re-commits the uniform init.
func TestScenarioS2SeqMax(t *testing.T) {
	x0, x1 := daigo.NewVariable(0, 2), daigo.NewVariable(1, 2)
	f := mustFactor(t, daigo.NewVarSet(x0, x1), []float64{1, 2, 3, 4})
	fg := mustGraph(t, []daigo.Variable{x0, x1}, []daigo.Factor{f})

	p := props(t, "tol", 1e-9, "maxiter", 50, "logdomain", false, "updates", "SEQMAX")
	e, err := New(fg, p)
	daigo.CheckError(t, err)

	_, err = e.Run()
	daigo.CheckError(t, err)

	b0, err := e.BeliefV(fg.VarIndex(0))
	daigo.CheckError(t, err)
	daigo.CompareSliceFloat(t, []float64{0.4, 0.6}, b0.Values(), "S2 SEQMAX belief x0", 1e-9)

	b1, err := e.BeliefV(fg.VarIndex(1))
	daigo.CheckError(t, err)
	daigo.CompareSliceFloat(t, []float64{0.3, 0.7}, b1.Values(), "S2 SEQMAX belief x1", 1e-9)
}

// S3: a chain of 5 binary variables with identical pairwise factor
// [[2,1],[1,2]] and uniform unaries. All single-variable beliefs equal
// [0.5, 0.5] by symmetry, for any schedule.
func TestScenarioS3(t *testing.T) {
	for _, updates := range []string{"SEQFIX", "SEQRND", "SEQMAX", "PARALL"} {
		t.Run(updates, func(t *testing.T) {
			fg := buildChain(t, 5)
			p := props(t, "tol", 1e-9, "maxiter", 100, "logdomain", false, "updates", updates, "seed", 7)
			e, err := New(fg, p)
			daigo.CheckError(t, err)

			_, err = e.Run()
			daigo.CheckError(t, err)

			beliefs, err := e.Beliefs()
			daigo.CheckError(t, err)
			for i, b := range beliefs {
				daigo.CompareSliceFloat(t, []float64{0.5, 0.5}, b.Values(),
					"S3 belief", 1e-9)
				_ = i
			}
		})
	}
}

// S4: a 4-cycle of binary variables, ferromagnetic pairwise
// [[2,1],[1,2]], no unary factors (equivalent to uniform unaries).
// Undamped PARALL may oscillate; with
// damping=0.5 convergence is reached and beliefs are [0.5, 0.5] within
// tol=1e-6.
func TestScenarioS4(t *testing.T) {
	fg := buildCycle(t, 4)
	p := props(t, "tol", 1e-6, "maxiter", 200, "logdomain", false, "updates", "PARALL", "damping", 0.5)
	e, err := New(fg, p)
	daigo.CheckError(t, err)

	_, err = e.Run()
	daigo.CheckError(t, err)

	beliefs, err := e.Beliefs()
	daigo.CheckError(t, err)
	for _, b := range beliefs {
		daigo.CompareSliceFloat(t, []float64{0.5, 0.5}, b.Values(), "S4 belief", 1e-6)
	}
}

// S5: a 3-node triangle with factors that make one message
// non-normalizable (an all-zero factor). Run fails with
// NotNormalizable.
func TestScenarioS5(t *testing.T) {
	x0 := daigo.NewVariable(0, 2)
	x1 := daigo.NewVariable(1, 2)
	x2 := daigo.NewVariable(2, 2)
	f01 := mustFactor(t, daigo.NewVarSet(x0, x1), []float64{2, 1, 1, 2})
	f12 := mustFactor(t, daigo.NewVarSet(x1, x2), []float64{2, 1, 1, 2})
	f02 := mustFactor(t, daigo.NewVarSet(x0, x2), []float64{0, 0, 0, 0})
	fg := mustGraph(t, []daigo.Variable{x0, x1, x2}, []daigo.Factor{f01, f12, f02})

	p := props(t, "tol", 1e-9, "maxiter", 50, "logdomain", false, "updates", "SEQFIX")
	e, err := New(fg, p)
	daigo.CheckError(t, err)

	_, err = e.Run()
	if err == nil {
		t.Fatal("expected NotNormalizable error")
	}
	if kind, ok := daigo.KindOf(err); !ok || kind != daigo.NotNormalizable {
		t.Errorf("expected NotNormalizable, got %v", err)
	}
}

// S6: a factor graph with one variable of 3 states and two factors
// [1,2,3] and [3,2,1]. The single-variable belief equals the
// normalization of [3,4,3], i.e. [0.3, 0.4, 0.3].
func TestScenarioS6(t *testing.T) {
	x0 := daigo.NewVariable(0, 3)
	f0 := mustFactor(t, daigo.NewVarSet(x0), []float64{1, 2, 3})
	f1 := mustFactor(t, daigo.NewVarSet(x0), []float64{3, 2, 1})
	fg := mustGraph(t, []daigo.Variable{x0}, []daigo.Factor{f0, f1})

	p := props(t, "tol", 1e-9, "maxiter", 10, "logdomain", false, "updates", "SEQFIX")
	e, err := New(fg, p)
	daigo.CheckError(t, err)

	_, err = e.Run()
	daigo.CheckError(t, err)

	b, err := e.BeliefV(0)
	daigo.CheckError(t, err)
	daigo.CompareSliceFloat(t, []float64{0.3, 0.4, 0.3}, b.Values(), "S6 belief", 1e-9)
}

// buildChain builds a chain of n binary variables with identical
// pairwise factor [[2,1],[1,2]] and no unary factors.
func buildChain(t *testing.T, n int) *daigo.FactorGraph {
	t.Helper()
	vars := make([]daigo.Variable, n)
	for i := range vars {
		vars[i] = daigo.NewVariable(int64(i), 2)
	}
	factors := make([]daigo.Factor, 0, n-1)
	for i := 0; i < n-1; i++ {
		factors = append(factors, mustFactor(t, daigo.NewVarSet(vars[i], vars[i+1]), []float64{2, 1, 1, 2}))
	}
	return mustGraph(t, vars, factors)
}

// buildCycle builds an n-cycle of binary variables with identical
// pairwise factor [[2,1],[1,2]] and no unary factors.
func buildCycle(t *testing.T, n int) *daigo.FactorGraph {
	t.Helper()
	vars := make([]daigo.Variable, n)
	for i := range vars {
		vars[i] = daigo.NewVariable(int64(i), 2)
	}
	factors := make([]daigo.Factor, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		factors = append(factors, mustFactor(t, daigo.NewVarSet(vars[i], vars[j]), []float64{2, 1, 1, 2}))
	}
	return mustGraph(t, vars, factors)
}

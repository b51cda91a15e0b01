// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bp

import (
	"math"

	"github.com/akualab/daigo"
)

// BeliefV returns the normalized single-variable belief at the
// variable with canonical index i: the pointwise product of all
// incoming messages m_{I→i}, normalized (spec.md §4.7).
func (e *Engine) BeliefV(i int) (daigo.Prob, error) {
	return e.beliefV(i)
}

// beliefV is the unexported fast path used internally (convergence
// tracking, logZ) to avoid repeated bounds/label lookups.
func (e *Engine) beliefV(i int) (daigo.Prob, error) {
	prod := e.productIntoFactor(i, -1)
	return prod.Normalize()
}

// BeliefF returns the normalized factor belief at factor I: F_I.values
// with each neighboring variable j's incoming product m_{j→I}
// broadcast in and multiplied, then normalized (spec.md §4.7).
func (e *Engine) BeliefF(I int) (daigo.Prob, error) {
	return e.beliefF(I)
}

func (e *Engine) beliefF(I int) (daigo.Prob, error) {
	prod := e.factorValues[I].Clone()
	for _, nb := range e.fg.NbF(I) {
		j := nb.Node
		mJtoI := e.productIntoFactor(j, I)
		idx := e.edges[j][nb.Dual].index
		prod = prod.Mul(daigo.Broadcast(mJtoI, idx))
	}
	return prod.Normalize()
}

// Belief returns the joint belief over vs, which must be contained in
// some single factor's scope; otherwise it fails with
// BeliefNotRepresentable (spec.md §4.7).
func (e *Engine) Belief(vs daigo.VarSet) (daigo.Prob, error) {
	if vs.Len() == 1 {
		i := e.fg.VarIndex(vs.Vars()[0].Label)
		if i >= 0 {
			return e.beliefV(i)
		}
	}
	for I := 0; I < e.fg.NrFactors(); I++ {
		scope := e.fg.FactorAt(I).Vars
		if !scope.Subset(vs) {
			continue
		}
		full, err := e.beliefF(I)
		if err != nil {
			return daigo.Prob{}, err
		}
		if scope.Len() == vs.Len() {
			return full, nil
		}
		return daigo.MarginalizeSet(scope, full, vs), nil
	}
	return daigo.Prob{}, daigo.ErrBeliefNotRepresentable(vs)
}

// Beliefs returns every single-variable belief, indexed by canonical
// variable index.
func (e *Engine) Beliefs() ([]daigo.Prob, error) {
	out := make([]daigo.Prob, e.fg.NrVars())
	for i := range out {
		b, err := e.beliefV(i)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// LogZ estimates the log-partition function via the Bethe free-energy
// approximation (spec.md §4.8):
//
//	logZ ≈ Σ_I Σ_s b_I(s)(log F_I(s) − log b_I(s))
//	      − Σ_i (deg(i) − 1) Σ_s b_i(s) log b_i(s)
//
// with 0 log 0 = 0 and b log(b/F) = 0 when both b and F are zero.
func (e *Engine) LogZ() (float64, error) {
	var sum float64
	for I := 0; I < e.fg.NrFactors(); I++ {
		bI, err := e.beliefF(I)
		bI = bI.ToLinear()
		if err != nil {
			return 0, err
		}
		fI := e.factorValues[I].ToLinear()
		for s := 0; s < bI.Len(); s++ {
			b := bI.At(s)
			f := fI.At(s)
			if b == 0 {
				continue
			}
			if f == 0 {
				return 0, daigo.ErrNotNormalizable("logZ: factor term diverges (belief positive, factor zero)")
			}
			term := b * (math.Log(f) - math.Log(b))
			if math.IsInf(term, 0) || math.IsNaN(term) {
				return 0, daigo.ErrNotNormalizable("logZ: non-finite factor term")
			}
			sum += term
		}
	}
	for i := 0; i < e.fg.NrVars(); i++ {
		deg := len(e.fg.NbV(i))
		bi, err := e.beliefV(i)
		if err != nil {
			return 0, err
		}
		bi = bi.ToLinear()
		var entropy float64
		for s := 0; s < bi.Len(); s++ {
			b := bi.At(s)
			if b == 0 {
				continue
			}
			entropy += b * math.Log(b)
		}
		sum -= float64(deg-1) * entropy
	}
	if math.IsInf(sum, 0) || math.IsNaN(sum) {
		return 0, daigo.ErrNotNormalizable("logZ: non-finite result")
	}
	return sum, nil
}

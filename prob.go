// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Domain tags whether a Prob stores linear values or log-values.
type Domain int

const (
	// Linear values are stored directly, non-negative.
	Linear Domain = iota
	// Log values are stored as natural logs; a zero-probability
	// entry is represented as -Inf.
	Log
)

// Prob is a dense, finite, non-negative vector used for messages,
// factor tables and beliefs. In Log domain the stored values are
// natural logs of the represented probabilities.
type Prob struct {
	Domain Domain
	v      []float64
}

// NewProb creates a Linear-domain Prob from values, copying them.
func NewProb(values []float64) Prob {
	v := make([]float64, len(values))
	copy(v, values)
	return Prob{Domain: Linear, v: v}
}

// UniformProb creates a Linear-domain Prob of length n with every
// entry set to 1/n. n must be positive.
func UniformProb(n int) Prob {
	v := make([]float64, n)
	u := 1.0 / float64(n)
	for i := range v {
		v[i] = u
	}
	return Prob{Domain: Linear, v: v}
}

// IdentityProb returns the multiplicative identity for Mul in the
// given domain: all-ones (Linear) or all-zeros (Log, i.e. log(1)).
// Used to seed pointwise-product reductions over a variable's
// incoming messages.
func IdentityProb(n int, d Domain) Prob {
	v := make([]float64, n)
	if d == Linear {
		for i := range v {
			v[i] = 1
		}
	}
	return Prob{Domain: d, v: v}
}

// UniformLogProb creates a Log-domain Prob of length n with every
// entry set to 0 (i.e. represented probability 1/1, renormalized by
// callers as needed -- BP initializes log messages to 0, matching
// linear initialization to a constant before normalization).
func UniformLogProb(n int) Prob {
	v := make([]float64, n)
	return Prob{Domain: Log, v: v}
}

// Len is the vector length.
func (p Prob) Len() int { return len(p.v) }

// Values returns the raw underlying slice (log-values if Domain is
// Log). Callers must not mutate it.
func (p Prob) Values() []float64 { return p.v }

// At returns the i'th entry.
func (p Prob) At(i int) float64 { return p.v[i] }

// Clone makes an independent copy.
func (p Prob) Clone() Prob {
	v := make([]float64, len(p.v))
	copy(v, p.v)
	return Prob{Domain: p.Domain, v: v}
}

// ToLinear returns an equivalent Linear-domain Prob.
func (p Prob) ToLinear() Prob {
	if p.Domain == Linear {
		return p.Clone()
	}
	out := make([]float64, len(p.v))
	for i, lv := range p.v {
		out[i] = math.Exp(lv)
	}
	return Prob{Domain: Linear, v: out}
}

// ToLog returns an equivalent Log-domain Prob. Zero entries map to
// -Inf.
func (p Prob) ToLog() Prob {
	if p.Domain == Log {
		return p.Clone()
	}
	out := make([]float64, len(p.v))
	for i, v := range p.v {
		out[i] = math.Log(v)
	}
	return Prob{Domain: Log, v: out}
}

// Mul returns the pointwise product of p and o (same domain and
// length required). Linear: elementwise multiply. Log: elementwise
// add.
func (p Prob) Mul(o Prob) Prob {
	checkSameShape(p, o)
	out := make([]float64, len(p.v))
	if p.Domain == Linear {
		for i := range out {
			out[i] = p.v[i] * o.v[i]
		}
	} else {
		for i := range out {
			out[i] = p.v[i] + o.v[i]
		}
	}
	return Prob{Domain: p.Domain, v: out}
}

// Div returns the pointwise quotient p/o, with 0/0 ≡ 0. Linear:
// elementwise divide. Log: elementwise subtract, with -Inf - -Inf ≡
// -Inf (the log-domain representation of 0/0 ≡ 0).
func (p Prob) Div(o Prob) Prob {
	checkSameShape(p, o)
	out := make([]float64, len(p.v))
	if p.Domain == Linear {
		for i := range out {
			if p.v[i] == 0 && o.v[i] == 0 {
				out[i] = 0
				continue
			}
			out[i] = p.v[i] / o.v[i]
		}
	} else {
		for i := range out {
			if math.IsInf(p.v[i], -1) && math.IsInf(o.v[i], -1) {
				out[i] = math.Inf(-1)
				continue
			}
			out[i] = p.v[i] - o.v[i]
		}
	}
	return Prob{Domain: p.Domain, v: out}
}

// Pow returns p raised elementwise to exponent e. Linear: elementwise
// power. Log: elementwise scalar multiply.
func (p Prob) Pow(e float64) Prob {
	out := make([]float64, len(p.v))
	if p.Domain == Linear {
		for i, v := range p.v {
			out[i] = math.Pow(v, e)
		}
	} else {
		for i, v := range p.v {
			out[i] = v * e
		}
	}
	return Prob{Domain: p.Domain, v: out}
}

// Sum returns the total mass. Linear: arithmetic sum. Log: the
// logarithm of the sum, via a numerically stable log-sum-exp.
func (p Prob) Sum() float64 {
	if p.Domain == Linear {
		return floats.Sum(p.v)
	}
	return floats.LogSumExp(p.v)
}

// Max returns the largest entry (in the vector's own domain; for Log
// this is the largest log-value, i.e. the log of the largest
// probability).
func (p Prob) Max() float64 {
	return floats.Max(p.v)
}

// Normalize returns p scaled so that Sum() == 1 (Linear) or Sum() == 0
// (Log, i.e. log-sum-exp 0). Fails with NotNormalizable if the total
// mass is zero or non-finite.
func (p Prob) Normalize() (Prob, error) {
	sum := p.Sum()
	if p.Domain == Linear {
		if sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
			return Prob{}, errNotNormalizable("sum is zero or non-finite")
		}
		return p.scale(1 / sum), nil
	}
	if math.IsInf(sum, -1) || math.IsInf(sum, 1) || math.IsNaN(sum) {
		return Prob{}, errNotNormalizable("log-sum-exp is zero-mass or non-finite")
	}
	out := make([]float64, len(p.v))
	for i, v := range p.v {
		out[i] = v - sum
	}
	return Prob{Domain: Log, v: out}, nil
}

// scale multiplies every linear-domain entry by f (internal helper;
// use Normalize for the public, validated path).
func (p Prob) scale(f float64) Prob {
	out := make([]float64, len(p.v))
	for i, v := range p.v {
		out[i] = v * f
	}
	return Prob{Domain: p.Domain, v: out}
}

// Distance returns the L∞ distance between p and o: the largest
// absolute difference between corresponding entries, compared in
// Linear domain regardless of either vector's storage domain.
func (p Prob) Distance(o Prob) float64 {
	a, b := p.ToLinear(), o.ToLinear()
	checkSameShape(a, b)
	return floats.Distance(a.v, b.v, math.Inf(1))
}

func checkSameShape(p, o Prob) {
	if p.Domain != o.Domain {
		panic("daigo: Prob domain mismatch")
	}
	if len(p.v) != len(o.v) {
		panic("daigo: Prob length mismatch")
	}
}

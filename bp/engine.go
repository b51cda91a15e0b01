// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bp

import (
	"math/rand"

	"github.com/akualab/daigo"
	"github.com/golang/glog"
)

// edgeProp is the per-edge state of spec.md §3's "Edge table": the
// precomputed index array, the current and pending messages, and the
// residual since last commit. It is grounded directly on libDAI's
// BP::EdgeProp (include/dai/bp.h).
type edgeProp struct {
	index      []int
	message    daigo.Prob
	newMessage daigo.Prob
	residual   float64
}

// Engine runs loopy belief propagation over a *daigo.FactorGraph. The
// edge tables, index arrays and domain-converted factor tables are
// allocated in New. Run is not allocation-free: every message update
// and every per-iteration belief readout allocates fresh Probs, each
// pass builds a new edge-order slice, and SEQMAX pushes a new heap
// entry for every residual update.
type Engine struct {
	fg     *daigo.FactorGraph
	props  Properties
	domain daigo.Domain

	// edges[i][_I] is the state of the edge between variable i and its
	// _I'th neighboring factor I = fg.NbV(i)[_I].Node; its messages are
	// the factor-to-variable message m_{I→i} (see message.go).
	edges [][]edgeProp

	// factorValues[I] is factors[I].Values converted once to the
	// engine's domain.
	factorValues []daigo.Prob

	maxdiff float64
	iters   int
	rng     *rand.Rand

	// prevBeliefs holds each variable's single-node belief as of the
	// previous convergence check, for the L∞ tracking of spec.md §4.6.
	prevBeliefs []daigo.Prob

	heap *residualHeap // only populated when props.Updates == SEQMAX
}

// New constructs an Engine over fg using the parsed configuration.
// The returned error is always nil: a malformed configuration is
// reported by ParseProperties, before any Engine is built.
func New(fg *daigo.FactorGraph, props Properties) (*Engine, error) {
	e := &Engine{
		fg:    fg,
		props: props,
	}
	if props.LogDomain {
		e.domain = daigo.Log
	} else {
		e.domain = daigo.Linear
	}
	seed := props.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	e.rng = rand.New(rand.NewSource(seed))

	e.factorValues = make([]daigo.Prob, fg.NrFactors())
	for I := 0; I < fg.NrFactors(); I++ {
		e.factorValues[I] = toDomain(fg.FactorAt(I).Values, e.domain)
	}

	e.edges = make([][]edgeProp, fg.NrVars())
	for i := 0; i < fg.NrVars(); i++ {
		nbs := fg.NbV(i)
		e.edges[i] = make([]edgeProp, len(nbs))
		for pos, nb := range nbs {
			e.edges[i][pos].index = fg.EdgeIndex(i, nb.Node)
		}
	}

	if props.Updates == SEQMAX {
		e.heap = newResidualHeap(e.nrEdges())
	}

	glog.Infof("New BP engine: %s, %d edges.", e.Identify(), e.nrEdges())

	e.Init()
	return e, nil
}

func toDomain(p daigo.Prob, d daigo.Domain) daigo.Prob {
	if d == daigo.Log {
		return p.ToLog()
	}
	return p.ToLinear()
}

func (e *Engine) nrEdges() int {
	n := 0
	for _, l := range e.edges {
		n += len(l)
	}
	return n
}

// Init resets every message to uniform and clears residuals and
// convergence state.
func (e *Engine) Init() {
	for i := range e.edges {
		e.initVar(i)
	}
	e.maxdiff = 0
	e.iters = 0
	e.prevBeliefs = nil
	if e.heap != nil {
		e.heap.reset(e)
	}
}

// InitVars resets only the messages incident to the listed variables,
// by their labels. Like Init, it also clears the iteration count,
// maxdiff and convergence state.
func (e *Engine) InitVars(labels ...int64) {
	for _, label := range labels {
		i := e.fg.VarIndex(label)
		if i < 0 {
			glog.Warningf("bp: Init(vars): variable label %d not found in graph, ignored.", label)
			continue
		}
		e.initVar(i)
	}
	e.maxdiff = 0
	e.iters = 0
	e.prevBeliefs = nil
	if e.heap != nil {
		e.heap.reset(e)
	}
}

func (e *Engine) initVar(i int) {
	n := e.fg.Var(i).States
	uniform := uniformProb(n, e.domain)
	for pos := range e.edges[i] {
		e.edges[i][pos].message = uniform.Clone()
		e.edges[i][pos].newMessage = uniform.Clone()
		e.edges[i][pos].residual = 0
	}
}

func uniformProb(n int, d daigo.Domain) daigo.Prob {
	if d == daigo.Log {
		return daigo.UniformLogProb(n)
	}
	return daigo.UniformProb(n)
}

// Iterations returns the number of completed full passes over the
// factor graph.
func (e *Engine) Iterations() int { return e.iters }

// MaxDiff returns the largest L∞ single-node-belief difference seen
// across completed iterations.
func (e *Engine) MaxDiff() float64 { return e.maxdiff }

// Identify renders a stable string embedding the algorithm name and a
// canonical serialization of the configuration (spec.md §6).
func (e *Engine) Identify() string {
	return "BP[" + e.props.canonical() + "]"
}

func (e *Engine) message(i, pos int) daigo.Prob    { return e.edges[i][pos].message }
func (e *Engine) newMessage(i, pos int) daigo.Prob { return e.edges[i][pos].newMessage }

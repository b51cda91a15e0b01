// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bp

import "github.com/akualab/daigo"

// edgeRef names a directed edge by (variable index, neighbor
// position), the same coordinates used to index Engine.edges.
type edgeRef struct {
	i, pos int
}

// canonicalOrder returns every edge in the canonical order of spec.md
// §4.4: for each variable i ascending, for each incident factor
// (neighbor position) ascending.
func (e *Engine) canonicalOrder() []edgeRef {
	refs := make([]edgeRef, 0, e.nrEdges())
	for i := range e.edges {
		for pos := range e.edges[i] {
			refs = append(refs, edgeRef{i, pos})
		}
	}
	return refs
}

// runIteration performs one full pass over the factor graph under the
// engine's configured scheduling discipline, per spec.md §4.4.
func (e *Engine) runIteration() error {
	switch e.props.Updates {
	case PARALL:
		return e.runParall()
	case SEQFIX:
		return e.runSeqFix()
	case SEQRND:
		return e.runSeqRnd()
	case SEQMAX:
		return e.runSeqMax()
	default:
		return daigo.ErrInternal("unrecognized update type")
	}
}

// runParall computes every edge's newMessage from the previous
// message snapshot, then commits all of them together (spec.md §4.4,
// §5's double-buffering note).
func (e *Engine) runParall() error {
	refs := e.canonicalOrder()
	for _, r := range refs {
		if err := e.calcNewMessage(r.i, r.pos); err != nil {
			return err
		}
	}
	for _, r := range refs {
		if err := e.updateMessage(r.i, r.pos); err != nil {
			return err
		}
	}
	return nil
}

// runSeqFix visits edges in canonical order, computing and
// immediately committing each.
func (e *Engine) runSeqFix() error {
	for _, r := range e.canonicalOrder() {
		if err := e.calcNewMessage(r.i, r.pos); err != nil {
			return err
		}
		if err := e.updateMessage(r.i, r.pos); err != nil {
			return err
		}
	}
	return nil
}

// runSeqRnd visits edges in a uniformly random permutation drawn from
// the engine's seeded random source, computing and immediately
// committing each.
func (e *Engine) runSeqRnd() error {
	refs := e.canonicalOrder()
	e.rng.Shuffle(len(refs), func(a, b int) { refs[a], refs[b] = refs[b], refs[a] })
	for _, r := range refs {
		if err := e.calcNewMessage(r.i, r.pos); err != nil {
			return err
		}
		if err := e.updateMessage(r.i, r.pos); err != nil {
			return err
		}
	}
	return nil
}

// runSeqMax commits |E| edges, always picking the currently
// highest-residual edge, and refreshing the residual of every edge
// whose newMessage depends on the message that was just committed
// (spec.md §4.4). Before the first selection it primes every edge's
// residual with a real calcNewMessage, the way libDAI's bp.cpp run()
// computes every message once before entering the SEQMAX loop; without
// this, every edge starts at residual 0 and the tie-break would keep
// re-selecting the same edge without ever committing a real message.
func (e *Engine) runSeqMax() error {
	if !e.heap.primed {
		for i := range e.edges {
			for pos := range e.edges[i] {
				if err := e.calcNewMessage(i, pos); err != nil {
					return err
				}
				e.heap.update(e, i, pos, e.edges[i][pos].residual)
			}
		}
		e.heap.primed = true
	}

	n := e.nrEdges()
	for k := 0; k < n; k++ {
		i, pos, err := e.heap.max()
		if err != nil {
			return err
		}
		if err := e.updateMessage(i, pos); err != nil {
			return err
		}
		e.heap.update(e, i, pos, 0)

		// The commit changed m_{I→i}. Any message m_{J→k} whose
		// calculation multiplies in variable i's incoming-message
		// product (i.e. J ≠ I is another factor incident to i, and k
		// ≠ i is another variable of J) now depends on a changed
		// input and must be refreshed (spec.md §4.4).
		I := e.fg.NbV(i)[pos].Node
		for _, nbI := range e.fg.NbV(i) {
			J := nbI.Node
			if J == I {
				continue
			}
			for _, nbJ := range e.fg.NbF(J) {
				k := nbJ.Node
				if k == i {
					continue
				}
				kPos := nbJ.Dual
				if err := e.calcNewMessage(k, kPos); err != nil {
					return err
				}
				e.heap.update(e, k, kPos, e.edges[k][kPos].residual)
			}
		}
	}
	return nil
}

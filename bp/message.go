// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bp

import "github.com/akualab/daigo"

// Each edges[i][pos] stores the message m_{I→i} from the neighboring
// factor I = fg.NbV(i)[pos].Node into variable i (spec.md §4.7's
// belief formula -- "pointwise product of all incoming messages
// m_{I→i} over factors I incident to i" -- fixes this direction; it
// is also libDAI's actual convention). The variable-to-factor
// message m_{j→I} that spec.md §4.2 multiplies into a factor is never
// stored: it is exactly the product of all of j's other incoming
// factor messages, and is recomputed on demand by productIntoFactor.

// productIntoFactor computes m_{j→except}(x_j): the pointwise product
// of every message currently incoming to variable j from a factor
// other than except. Passing except = -1 computes the full product
// (used for single-variable belief readout).
func (e *Engine) productIntoFactor(j, except int) daigo.Prob {
	n := e.fg.Var(j).States
	prod := daigo.IdentityProb(n, e.domain)
	for pos := range e.edges[j] {
		if e.fg.NbV(j)[pos].Node == except {
			continue
		}
		prod = prod.Mul(e.edges[j][pos].message)
	}
	return prod
}

// calcNewMessage recomputes edges[i][pos].newMessage (m_{I→i}, where
// I = fg.NbV(i)[pos].Node) from the current messages incoming to
// every other variable neighboring I, per spec.md §4.2. It does not
// commit the result; callers invoke updateMessage separately (PARALL
// needs the two phases kept apart; sequential modes call both back to
// back).
func (e *Engine) calcNewMessage(i, pos int) error {
	nb := e.fg.NbV(i)[pos]
	I := nb.Node

	prod := e.factorValues[I].Clone()
	for _, nb2 := range e.fg.NbF(I) {
		j := nb2.Node
		if j == i {
			continue
		}
		// nb2.Dual is j's neighbor position for factor I, i.e. the
		// slot in edges[j] whose .index array is π_{F_I.Vars→{x_j}}.
		mJtoI := e.productIntoFactor(j, I)
		idx := e.edges[j][nb2.Dual].index
		prod = prod.Mul(daigo.Broadcast(mJtoI, idx))
	}

	varI := e.fg.Var(i)
	marginal := daigo.Marginalize(e.fg.FactorAt(I).Vars, prod, varI)

	normalized, err := marginal.Normalize()
	if err != nil {
		return err
	}
	ep := &e.edges[i][pos]
	ep.newMessage = normalized
	ep.residual = normalized.Distance(ep.message)
	return nil
}

// updateMessage applies damping (spec.md §4.5) and commits
// edges[i][pos].newMessage into .message, resetting .residual to zero
// per spec.md §3 ("Zero after the edge is committed").
func (e *Engine) updateMessage(i, pos int) error {
	ep := &e.edges[i][pos]

	var committed daigo.Prob
	if e.props.Damping == 0 {
		committed = ep.newMessage
	} else {
		d := e.props.Damping
		combined := ep.message.Pow(d).Mul(ep.newMessage.Pow(1 - d))
		norm, err := combined.Normalize()
		if err != nil {
			return err
		}
		committed = norm
	}

	ep.message = committed
	ep.residual = 0
	return nil
}

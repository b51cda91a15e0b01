// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bp

import "github.com/golang/glog"

// Run iterates the configured update discipline until the largest
// single-variable-belief L∞ difference between successive iterations
// falls to or below props.Tol, or props.MaxIter full passes have run,
// whichever comes first (spec.md §4.6). It returns the achieved
// maximum difference.
func (e *Engine) Run() (float64, error) {
	for e.iters < e.props.MaxIter {
		if err := e.runIteration(); err != nil {
			return e.maxdiff, err
		}
		e.iters++

		beliefs, err := e.Beliefs()
		if err != nil {
			return e.maxdiff, err
		}

		if e.prevBeliefs != nil {
			diff := 0.0
			for i, b := range beliefs {
				d := b.Distance(e.prevBeliefs[i])
				if d > diff {
					diff = d
				}
			}
			if diff > e.maxdiff {
				e.maxdiff = diff
			}
			e.prevBeliefs = beliefs
			glog.V(1).Infof("bp: iteration %d, diff=%g", e.iters, diff)
			if diff <= e.props.Tol {
				return e.maxdiff, nil
			}
			continue
		}
		e.prevBeliefs = beliefs
		glog.V(1).Infof("bp: iteration %d, no previous beliefs to compare.", e.iters)
	}
	return e.maxdiff, nil
}

// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bp implements loopy belief propagation over discrete factor
// graphs (github.com/akualab/daigo). It is built on the daigo
// package's FactorGraph/Factor/Prob/VarSet primitives; nothing here
// mutates the graph it is given.
package bp

import (
	"fmt"

	"github.com/akualab/daigo"
)

// UpdateType names one of the four scheduling disciplines of spec.md
// §4.4.
type UpdateType int

const (
	// SEQFIX visits edges in a fixed canonical order each iteration.
	SEQFIX UpdateType = iota
	// SEQRND visits edges in a per-iteration random permutation.
	SEQRND
	// SEQMAX commits the edge with largest residual first.
	SEQMAX
	// PARALL computes every edge from the previous snapshot, then
	// commits all of them together.
	PARALL
)

func (u UpdateType) String() string {
	switch u {
	case SEQFIX:
		return "SEQFIX"
	case SEQRND:
		return "SEQRND"
	case SEQMAX:
		return "SEQMAX"
	case PARALL:
		return "PARALL"
	default:
		return fmt.Sprintf("UpdateType(%d)", int(u))
	}
}

func parseUpdateType(s string) (UpdateType, error) {
	switch s {
	case "SEQFIX":
		return SEQFIX, nil
	case "SEQRND":
		return SEQRND, nil
	case "SEQMAX":
		return SEQMAX, nil
	case "PARALL":
		return PARALL, nil
	default:
		return 0, fmt.Errorf("unrecognized update type %q", s)
	}
}

// Properties is the BP engine's parsed configuration (spec.md §4.3).
type Properties struct {
	MaxIter   int
	Tol       float64
	LogDomain bool
	Damping   float64
	Updates   UpdateType
	Verbose   int
	// Seed sets the source for SEQRND's per-iteration permutation.
	// Zero means "use the default seed", matching the teacher's
	// model.DefaultSeed convention (model/model.go).
	Seed int64
}

const defaultSeed = 33

// ParseProperties validates and parses a daigo.PropertySet into
// Properties. Mandatory keys are tol, maxiter, logdomain, updates
// (spec.md §6); missing ones fail with daigo's NotSpecified kind, and
// an unrecognized updates value fails with UnknownEnum. damping >= 1
// is rejected with UnknownEnum per spec.md §9 note 3 (the source's
// behavior there is undefined; we reject rather than guess).
func ParseProperties(ps daigo.PropertySet) (Properties, error) {
	var props Properties

	tol, err := ps.Float64("tol")
	if err != nil {
		return props, err
	}
	props.Tol = tol

	maxiter, err := ps.Int("maxiter")
	if err != nil {
		return props, err
	}
	props.MaxIter = maxiter

	logdomain, err := ps.Bool("logdomain")
	if err != nil {
		return props, err
	}
	props.LogDomain = logdomain

	updatesStr, err := ps.String("updates")
	if err != nil {
		return props, err
	}
	updates, perr := parseUpdateType(updatesStr)
	if perr != nil {
		return props, daigo.ErrUnknownEnum("updates", updatesStr)
	}
	props.Updates = updates

	if err := ps.Require("damping"); err == nil {
		d, derr := ps.Float64("damping")
		if derr != nil {
			return props, derr
		}
		if d < 0 || d >= 1 {
			return props, daigo.ErrUnknownEnum("damping", d)
		}
		props.Damping = d
	}

	if err := ps.Require("verbose"); err == nil {
		v, verr := ps.Int("verbose")
		if verr != nil {
			return props, verr
		}
		props.Verbose = v
	}

	props.Seed = defaultSeed
	if err := ps.Require("seed"); err == nil {
		s, serr := ps.Int("seed")
		if serr != nil {
			return props, serr
		}
		props.Seed = int64(s)
	}

	return props, nil
}

// canonical renders the configuration deterministically, used by
// Engine.Identify.
func (p Properties) canonical() string {
	return daigo.NewPropertySet(
		"damping", p.Damping,
		"logdomain", p.LogDomain,
		"maxiter", p.MaxIter,
		"tol", p.Tol,
		"updates", p.Updates.String(),
	).Canonical()
}

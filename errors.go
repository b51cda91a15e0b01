// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind names one entry in the engine's error taxonomy. It is a
// closed set; new kinds are not expected to be added by callers.
type ErrorKind int

const (
	// NotSpecified means a mandatory configuration key is missing.
	NotSpecified ErrorKind = iota
	// UnknownEnum means a configuration value does not name a
	// recognized scheduling or initialization variant.
	UnknownEnum
	// NotNormalizable means a message or belief would have sum zero
	// or non-finite.
	NotNormalizable
	// BeliefNotRepresentable means a joint belief was requested over
	// a VarSet not contained in any factor's scope.
	BeliefNotRepresentable
	// InvalidFactorGraph means the incidence violates an invariant.
	InvalidFactorGraph
	// Internal means a contract violation within the engine.
	Internal
)

func (k ErrorKind) String() string {
	switch k {
	case NotSpecified:
		return "not specified"
	case UnknownEnum:
		return "unknown enum value"
	case NotNormalizable:
		return "quantity not normalizable"
	case BeliefNotRepresentable:
		return "belief not representable"
	case InvalidFactorGraph:
		return "invalid factor graph"
	case Internal:
		return "internal error"
	default:
		return "unrecognized error kind"
	}
}

// Error is the error type raised by this package. Its Kind lets
// callers recover from specific taxonomy entries with errors.As,
// instead of parsing Error strings.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func errNotSpecified(key string) error {
	return newError(NotSpecified, "mandatory property %q not set", key)
}

func errUnknownEnum(key string, value interface{}) error {
	return newError(UnknownEnum, "property %q has unrecognized value %v", key, value)
}

func errNotNormalizable(detail string) error {
	return newError(NotNormalizable, "%s", detail)
}

func errBeliefNotRepresentable(vs VarSet) error {
	return newError(BeliefNotRepresentable, "no factor contains varset %v", vs.Vars())
}

func errInvalidFactorGraph(detail string) error {
	return newError(InvalidFactorGraph, "%s", detail)
}

func errInternal(detail string) error {
	return newError(Internal, "%s", detail)
}

// ErrNotSpecified builds a NotSpecified error for the given
// configuration key, for use by collaborator packages (e.g. bp)
// validating their own PropertySet-derived configuration.
func ErrNotSpecified(key string) error { return errNotSpecified(key) }

// ErrUnknownEnum builds an UnknownEnum error for the given
// configuration key and offending value.
func ErrUnknownEnum(key string, value interface{}) error { return errUnknownEnum(key, value) }

// ErrNotNormalizable builds a NotNormalizable error with the given
// detail message.
func ErrNotNormalizable(detail string) error { return errNotNormalizable(detail) }

// ErrBeliefNotRepresentable builds a BeliefNotRepresentable error for
// the given VarSet.
func ErrBeliefNotRepresentable(vs VarSet) error { return errBeliefNotRepresentable(vs) }

// ErrInternal builds an Internal error with the given detail message.
func ErrInternal(detail string) error { return errInternal(detail) }

// KindOf recovers the ErrorKind carried by err, if any, unwrapping
// through github.com/pkg/errors causes along the way.
func KindOf(err error) (ErrorKind, bool) {
	type causer interface {
		Cause() error
	}
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return 0, false
}

// wrap attaches context to err using github.com/pkg/errors, preserving
// the ability to recover the original *Error via KindOf.
func wrap(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

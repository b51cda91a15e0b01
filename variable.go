// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import "fmt"

// Variable is a discrete random variable. Its Label is its identity:
// two Variables with the same Label are considered the same variable,
// and must carry the same States within a single FactorGraph.
type Variable struct {
	Label  int64
	States int
}

// NewVariable creates a Variable with the given label and cardinality.
func NewVariable(label int64, states int) Variable {
	return Variable{Label: label, States: states}
}

// Equal reports whether two variables share a label (and, by
// invariant, the same number of states).
func (v Variable) Equal(o Variable) bool { return v.Label == o.Label }

// String renders the variable the way libDAI does, e.g. "x3".
func (v Variable) String() string { return fmt.Sprintf("x%d", v.Label) }

// variablesByLabel sorts a slice of Variable by ascending Label.
type variablesByLabel []Variable

func (s variablesByLabel) Len() int           { return len(s) }
func (s variablesByLabel) Less(i, j int) bool { return s[i].Label < s[j].Label }
func (s variablesByLabel) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

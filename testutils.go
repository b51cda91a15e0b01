// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import (
	"math"
	"testing"
)

// Comparef64 returns true if the relative error between f1 and f2 is
// below tol, the same relative-error convention as the teacher's
// testutils.go.
func Comparef64(f1, f2, tol float64) bool {
	avg := math.Abs(f1+f2) / 2.0
	sErr := math.Abs(f2-f1) / (avg + 1)
	return sErr < tol
}

// CompareSliceFloat compares two slices elementwise using Comparef64,
// reporting each mismatch through t.Errorf.
func CompareSliceFloat(t *testing.T, expected, actual []float64, message string, tol float64) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("[%s]. length mismatch: expected %d, got %d", message, len(expected), len(actual))
		return
	}
	for i := range expected {
		if !Comparef64(expected[i], actual[i], tol) {
			t.Errorf("[%s] index %d. Expected: [%f], Got: [%f]", message, i, expected[i], actual[i])
		}
	}
}

// CompareFloats compares two floats using Comparef64.
func CompareFloats(t *testing.T, expected, actual float64, message string, tol float64) {
	t.Helper()
	if !Comparef64(expected, actual, tol) {
		t.Errorf("[%s]. Expected: [%f], Got: [%f]", message, expected, actual)
	}
}

// CheckError calls t.Fatal if e is not nil.
func CheckError(t *testing.T, e error) {
	t.Helper()
	if e != nil {
		t.Fatal(e)
	}
}

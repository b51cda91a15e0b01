// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daigo

import (
	"fmt"
	"strings"

	"github.com/akualab/daigo/internal/lru"
)

// indexCache memoizes VarSet.IndexFor results keyed by the pair of
// VarSets involved, the way the teacher's cache package memoizes
// per-frame feature vectors (cache/cache.go). Repeatedly constructing
// engines against structurally similar factor graphs (batch CLI runs,
// or many small graphs in a test suite) then avoids recomputing the
// same mixed-radix mapping.
type indexCache struct {
	c *lru.Cache
}

// newIndexCache creates a cache with the given capacity (number of
// distinct (VarSet,VarSet) pairs to remember). A capacity of 0
// disables eviction (unbounded).
func newIndexCache(capacity uint64) *indexCache {
	return &indexCache{c: lru.New(capacity)}
}

// indexFor returns s.IndexFor(sub), using the cache when the exact
// same pair of VarSets (by variable label+cardinality) has been seen
// before.
func (ic *indexCache) indexFor(s, sub VarSet) []int {
	if ic == nil {
		return s.IndexFor(sub)
	}
	key := varSetPairKey(s, sub)
	if v, ok := ic.c.Get(key); ok {
		return v.([]int)
	}
	idx := s.IndexFor(sub)
	ic.c.Set(key, idx)
	return idx
}

func varSetPairKey(s, sub VarSet) string {
	var b strings.Builder
	writeVarSetKey(&b, s)
	b.WriteByte('|')
	writeVarSetKey(&b, sub)
	return b.String()
}

func writeVarSetKey(b *strings.Builder, s VarSet) {
	for i, v := range s.Vars() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%d:%d", v.Label, v.States)
	}
}

// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lru is a small generic least-recently-used cache, keyed by
// string, used to memoize per-(VarSet,VarSet) index tables across
// repeated FactorGraph/engine construction. It plays the role the
// teacher's cache package (cache/cache.go, an LRU front end for
// []float64 values keyed by uint64) plays for per-frame feature
// vectors, generalized to an arbitrary value type and string key.
package lru

import (
	"container/list"
	"time"
)

type entry struct {
	key     string
	value   interface{}
	touched time.Time
}

// Cache is a fixed-capacity LRU cache keyed by string.
type Cache struct {
	capacity uint64
	ll       *list.List
	items    map[string]*list.Element
	oldest   time.Time
}

// New creates a Cache with the given capacity. A capacity of zero
// disables eviction.
func New(capacity uint64) *Cache {
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Stats reports current size, configured capacity, and the oldest
// entry's last-touched time, mirroring cache.Cache.Stats.
func (c *Cache) Stats() (size, capacity uint64, oldest time.Time) {
	size = uint64(c.ll.Len())
	capacity = c.capacity
	if c.ll.Len() > 0 {
		oldest = c.ll.Back().Value.(*entry).touched
	}
	return
}

// Get looks up key, promoting it to most-recently-used on a hit.
func (c *Cache) Get(key string) (interface{}, bool) {
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	e := el.Value.(*entry)
	e.touched = timeNow()
	return e.value, true
}

// Set inserts or updates key, evicting the least-recently-used entry
// if capacity is exceeded.
func (c *Cache) Set(key string, value interface{}) {
	if el, ok := c.items[key]; ok {
		el.Value.(*entry).value = value
		el.Value.(*entry).touched = timeNow()
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&entry{key: key, value: value, touched: timeNow()})
	c.items[key] = el
	c.evictIfNeeded()
}

// SetIfAbsent inserts value under key only if key is not already
// present.
func (c *Cache) SetIfAbsent(key string, value interface{}) {
	if _, ok := c.items[key]; ok {
		return
	}
	c.Set(key, value)
}

func (c *Cache) evictIfNeeded() {
	if c.capacity == 0 {
		return
	}
	for uint64(c.ll.Len()) > c.capacity {
		back := c.ll.Back()
		if back == nil {
			return
		}
		c.ll.Remove(back)
		delete(c.items, back.Value.(*entry).key)
	}
}

// Delete removes key, if present, reporting whether it was found.
func (c *Cache) Delete(key string) bool {
	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.ll.Remove(el)
	delete(c.items, key)
	return true
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.ll.Init()
	c.items = make(map[string]*list.Element)
}

// timeNow is a thin indirection so tests can avoid real-clock
// dependence if ever needed; production always uses time.Now.
var timeNow = time.Now

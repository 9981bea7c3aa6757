// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package strmap implements an open-addressed map keyed by string, using
// FNV-1a hashing and the same tombstone-free removal discipline as
// intmap. An explicit occupied flag marks empty slots, so "" is a valid,
// distinct key.
package strmap

const (
	fnvOffsetBasis uint64 = 1469598103934665603
	fnvPrime       uint64 = 1099511628211
)

const (
	initialCapacity = 8
	loadFactorNum   = 70
	loadFactorDen   = 100
)

func fnv1a(s string) uint64 {
	h := fnvOffsetBasis
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}

// Map is an open-addressed string -> V table with linear probing.
type Map[V any] struct {
	keys     []string
	values   []V
	occupied []bool
	capacity int
	count    int
	resizes  int
}

// New creates a Map whose capacity is initialHint rounded up to a power of
// two (at least 8). It grows once it is 70% full, so it holds fewer than
// initialHint entries before its first grow.
func New[V any](initialHint int) *Map[V] {
	cap := nextPowerOfTwo(initialHint)
	if cap < initialCapacity {
		cap = initialCapacity
	}
	return newWithCapacity[V](cap)
}

func newWithCapacity[V any](capacity int) *Map[V] {
	return &Map[V]{
		keys:     make([]string, capacity),
		values:   make([]V, capacity),
		occupied: make([]bool, capacity),
		capacity: capacity,
	}
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Len reports the number of occupied slots.
func (m *Map[V]) Len() int {
	return m.count
}

// Get returns the value for key and whether it was present.
func (m *Map[V]) Get(key string) (V, bool) {
	var zero V
	idx := m.probe(key)
	if idx < 0 {
		return zero, false
	}
	return m.values[idx], true
}

func (m *Map[V]) probe(key string) int {
	idx := int(fnv1a(key) & uint64(m.capacity-1))
	for i := 0; i < m.capacity; i++ {
		slot := (idx + i) & (m.capacity - 1)
		if !m.occupied[slot] {
			return -1
		}
		if m.keys[slot] == key {
			return slot
		}
	}
	return -1
}

// Put inserts or updates key -> value. Updating an existing key replaces
// the value but keeps the stored key, so arena-owned keys retain their
// identity across updates.
func (m *Map[V]) Put(key string, value V) {
	if m.count*loadFactorDen >= m.capacity*loadFactorNum {
		m.grow()
	}
	m.putNoGrow(key, value)
}

func (m *Map[V]) putNoGrow(key string, value V) {
	idx := int(fnv1a(key) & uint64(m.capacity-1))
	for i := 0; i < m.capacity; i++ {
		slot := (idx + i) & (m.capacity - 1)
		if !m.occupied[slot] {
			m.occupied[slot] = true
			m.keys[slot] = key
			m.values[slot] = value
			m.count++
			return
		}
		if m.keys[slot] == key {
			m.values[slot] = value
			return
		}
	}
	panic("strmap: table full")
}

func (m *Map[V]) grow() {
	old := m
	grown := newWithCapacity[V](old.capacity * 2)
	for i := 0; i < old.capacity; i++ {
		if old.occupied[i] {
			grown.putNoGrow(old.keys[i], old.values[i])
		}
	}
	grown.resizes = old.resizes + 1
	*m = *grown
}

// Resizes reports how many times this map has grown, for diagnostics
// (Store's index_resizes_total metric).
func (m *Map[V]) Resizes() int {
	return m.resizes
}

// Remove deletes key if present and reports whether it was present, using
// the same clear-then-rehome algorithm as intmap.Remove.
func (m *Map[V]) Remove(key string) bool {
	idx := m.probe(key)
	if idx < 0 {
		return false
	}

	var zeroV V
	m.occupied[idx] = false
	m.keys[idx] = ""
	m.values[idx] = zeroV
	m.count--

	slot := (idx + 1) & (m.capacity - 1)
	for m.occupied[slot] {
		k := m.keys[slot]
		v := m.values[slot]
		m.occupied[slot] = false
		m.keys[slot] = ""
		m.values[slot] = zeroV
		m.count--
		m.putNoGrow(k, v)
		slot = (slot + 1) & (m.capacity - 1)
	}
	return true
}

// ForEach iterates every occupied slot in table order. Iteration stops
// early if fn returns false.
func (m *Map[V]) ForEach(fn func(key string, value V) bool) {
	for i := 0; i < m.capacity; i++ {
		if m.occupied[i] {
			if !fn(m.keys[i], m.values[i]) {
				return
			}
		}
	}
}

// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package intmap

import (
	"math/rand"
	"testing"
)

func TestPutGet(t *testing.T) {
	m := New[string](4)
	m.Put(1, "a")
	m.Put(2, "b")
	m.Put(3, "c")

	if v, ok := m.Get(2); !ok || v != "b" {
		t.Fatalf("Get(2) = %q, %v", v, ok)
	}
	if _, ok := m.Get(42); ok {
		t.Fatalf("Get(42) should miss")
	}
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
}

func TestPutUpdateDoesNotGrowCount(t *testing.T) {
	m := New[int](4)
	m.Put(5, 1)
	m.Put(5, 2)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after update", m.Len())
	}
	if v, _ := m.Get(5); v != 2 {
		t.Fatalf("Get(5) = %d, want 2", v)
	}
}

func TestZeroKeyNeverStored(t *testing.T) {
	m := New[int](4)
	if _, ok := m.Get(0); ok {
		t.Fatalf("key 0 must never be present")
	}
	if m.Remove(0) {
		t.Fatalf("Remove(0) must report false")
	}
}

func TestGrowPreservesEntries(t *testing.T) {
	m := New[int](4)
	const n = 200
	for i := 1; i <= n; i++ {
		m.Put(uint64(i), i*i)
	}
	for i := 1; i <= n; i++ {
		v, ok := m.Get(uint64(i))
		if !ok || v != i*i {
			t.Fatalf("Get(%d) = %d, %v; want %d, true", i, v, ok, i*i)
		}
	}
	if m.Len() != n {
		t.Fatalf("Len() = %d, want %d", m.Len(), n)
	}
}

func TestRemoveRehomesRun(t *testing.T) {
	m := New[int](8)
	for i := 1; i <= 50; i++ {
		m.Put(uint64(i), i)
	}
	for i := 1; i <= 50; i += 2 {
		if !m.Remove(uint64(i)) {
			t.Fatalf("Remove(%d) should succeed", i)
		}
	}
	for i := 1; i <= 50; i++ {
		v, ok := m.Get(uint64(i))
		if i%2 == 1 {
			if ok {
				t.Fatalf("key %d should have been removed", i)
			}
		} else if !ok || v != i {
			t.Fatalf("Get(%d) = %d, %v; want %d, true", i, v, ok, i)
		}
	}
}

// TestAgainstOracle exercises random insert/delete mixes and checks the
// map against a plain Go map oracle, the map-correctness property from the
// testable-properties list.
func TestAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := New[int](4)
	oracle := map[uint64]int{}

	for i := 0; i < 5000; i++ {
		key := uint64(rng.Intn(500) + 1)
		if rng.Intn(3) == 0 {
			delete(oracle, key)
			m.Remove(key)
			continue
		}
		val := rng.Int()
		oracle[key] = val
		m.Put(key, val)
	}

	if m.Len() != len(oracle) {
		t.Fatalf("Len() = %d, want %d", m.Len(), len(oracle))
	}
	for k, want := range oracle {
		got, ok := m.Get(k)
		if !ok || got != want {
			t.Fatalf("Get(%d) = %d, %v; want %d, true", k, got, ok, want)
		}
	}
}

func TestForEachStopsEarly(t *testing.T) {
	m := New[int](4)
	for i := 1; i <= 10; i++ {
		m.Put(uint64(i), i)
	}
	seen := 0
	m.ForEach(func(k uint64, v int) bool {
		seen++
		return seen < 3
	})
	if seen != 3 {
		t.Fatalf("ForEach visited %d entries, want 3", seen)
	}
}

// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package strmap

import (
	"math/rand"
	"strconv"
	"testing"
)

func TestPutGet(t *testing.T) {
	m := New[int](4)
	m.Put("alice", 1)
	m.Put("bob", 2)

	if v, ok := m.Get("bob"); !ok || v != 2 {
		t.Fatalf("Get(bob) = %d, %v", v, ok)
	}
	if _, ok := m.Get("carol"); ok {
		t.Fatalf("Get(carol) should miss")
	}
}

func TestEmptyStringIsAValidKey(t *testing.T) {
	m := New[int](4)
	m.Put("", 99)
	if v, ok := m.Get(""); !ok || v != 99 {
		t.Fatalf("empty string key should be storable, got %d, %v", v, ok)
	}
}

func TestPutUpdateDoesNotGrowCount(t *testing.T) {
	m := New[int](4)
	m.Put("x", 1)
	m.Put("x", 2)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestGrowPreservesEntries(t *testing.T) {
	m := New[int](4)
	const n = 300
	for i := 0; i < n; i++ {
		m.Put(strconv.Itoa(i), i)
	}
	for i := 0; i < n; i++ {
		v, ok := m.Get(strconv.Itoa(i))
		if !ok || v != i {
			t.Fatalf("Get(%d) = %d, %v", i, v, ok)
		}
	}
}

func TestRemoveRehomesRun(t *testing.T) {
	m := New[int](8)
	keys := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		k := strconv.Itoa(i)
		keys = append(keys, k)
		m.Put(k, i)
	}
	for i := 0; i < 50; i += 2 {
		if !m.Remove(keys[i]) {
			t.Fatalf("Remove(%s) should succeed", keys[i])
		}
	}
	for i := 0; i < 50; i++ {
		v, ok := m.Get(keys[i])
		if i%2 == 0 {
			if ok {
				t.Fatalf("key %s should have been removed", keys[i])
			}
		} else if !ok || v != i {
			t.Fatalf("Get(%s) = %d, %v; want %d, true", keys[i], v, ok, i)
		}
	}
}

func TestAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := New[int](4)
	oracle := map[string]int{}

	for i := 0; i < 5000; i++ {
		key := strconv.Itoa(rng.Intn(500))
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
			t.Fatalf("Get(%q) = %d, %v; want %d, true", k, got, ok, want)
		}
	}
}

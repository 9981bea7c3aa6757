// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import (
	"errors"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(DefaultOptions())
	t.Cleanup(s.Close)
	return s
}

func TestAddEntityFindByIDAndName(t *testing.T) {
	s := newTestStore(t)

	e, err := s.AddEntity(42, "Test")
	if err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	if e.ID != 1 {
		t.Fatalf("ID = %d, want 1", e.ID)
	}

	byID, err := s.FindEntityByID(1)
	if err != nil {
		t.Fatalf("FindEntityByID: %v", err)
	}
	byName, err := s.FindEntityByName("Test")
	if err != nil {
		t.Fatalf("FindEntityByName: %v", err)
	}
	if byID != byName {
		t.Fatalf("FindEntityByID and FindEntityByName diverged: %p vs %p", byID, byName)
	}
}

func TestAddEntityDuplicateNameRejected(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddEntity(1, "dup"); err != nil {
		t.Fatalf("first AddEntity: %v", err)
	}
	_, err := s.AddEntity(2, "dup")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("second AddEntity err = %v, want ErrInvalidArgument", err)
	}

	// The first entity's name index entry must remain intact (invariant 2):
	// a rejected duplicate must not disturb the prior holder.
	e, err := s.FindEntityByName("dup")
	if err != nil || e.TypeID != 1 {
		t.Fatalf("FindEntityByName(dup) = %v, %v, want typeID 1", e, err)
	}
}

func TestAddEntityUnnamed(t *testing.T) {
	s := newTestStore(t)
	e, err := s.AddEntity(7, "")
	if err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	if e.Name != "" {
		t.Fatalf("Name = %q, want empty", e.Name)
	}
	if _, err := s.FindEntityByName(""); err == nil {
		t.Fatalf("FindEntityByName(\"\") should not resolve an unnamed entity")
	}
}

func TestEntityIDsAreMonotonic(t *testing.T) {
	s := newTestStore(t)
	var last uint64
	for i := 0; i < 50; i++ {
		e, err := s.AddEntity(uint32(i), "")
		if err != nil {
			t.Fatalf("AddEntity[%d]: %v", i, err)
		}
		if e.ID <= last {
			t.Fatalf("id %d not strictly greater than previous %d", e.ID, last)
		}
		last = e.ID
	}
}

func TestRemoveEntityNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.RemoveEntity(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("RemoveEntity(999) = %v, want ErrNotFound", err)
	}
}

func TestRemoveEntitySweepsBothAdjacencyDirections(t *testing.T) {
	s := newTestStore(t)

	a, _ := s.AddEntity(1, "A")
	b, _ := s.AddEntity(1, "B")
	c, _ := s.AddEntity(1, "C")
	rel, _ := s.AddRelationType("r")

	if _, err := s.AddEdge(a.ID, b.ID, rel.ID, 1.0); err != nil {
		t.Fatalf("AddEdge a->b: %v", err)
	}
	if _, err := s.AddEdge(b.ID, c.ID, rel.ID, 2.0); err != nil {
		t.Fatalf("AddEdge b->c: %v", err)
	}

	if err := s.RemoveEntity(b.ID); err != nil {
		t.Fatalf("RemoveEntity(b): %v", err)
	}

	// Forward sweep: a's outgoing list must no longer target b.
	fwd := s.GetAdjList(a.ID)
	if fwd != nil {
		for _, e := range fwd.Edges {
			if e.TargetEntity == b.ID {
				t.Fatalf("forward adjacency still targets removed entity %d", b.ID)
			}
		}
	}

	// Reverse sweep: c's reverse (incoming) list must no longer contain the
	// edge whose source was the removed entity b.
	rev := s.GetReverseAdjList(c.ID)
	if rev != nil && len(rev.Edges) != 0 {
		t.Fatalf("reverse adjacency for c still has %d entries after b removed", len(rev.Edges))
	}

	if _, err := s.FindEntityByID(b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindEntityByID(b) = %v, want ErrNotFound", err)
	}
}

func TestForEachEntityStopsEarly(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 10; i++ {
		if _, err := s.AddEntity(uint32(i), ""); err != nil {
			t.Fatalf("AddEntity: %v", err)
		}
	}
	seen := 0
	s.ForEachEntity(func(e *Entity) bool {
		seen++
		return seen < 3
	})
	if seen != 3 {
		t.Fatalf("seen = %d, want 3 (iteration should stop when fn returns false)", seen)
	}
}

func TestFindEntitiesByType(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.AddEntity(1, ""); err != nil {
			t.Fatalf("AddEntity: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := s.AddEntity(2, ""); err != nil {
			t.Fatalf("AddEntity: %v", err)
		}
	}
	got := s.FindEntitiesByType(1)
	if len(got) != 5 {
		t.Fatalf("FindEntitiesByType(1) len = %d, want 5", len(got))
	}
	for _, e := range got {
		if e.TypeID != 1 {
			t.Fatalf("FindEntitiesByType returned entity with TypeID %d", e.TypeID)
		}
	}
}

func TestEmptyStoreForEachIsNoop(t *testing.T) {
	s := newTestStore(t)
	entityCalls, edgeCalls := 0, 0
	s.ForEachEntity(func(*Entity) bool { entityCalls++; return true })
	s.ForEachEdge(func(EdgeRecord) bool { edgeCalls++; return true })
	if entityCalls != 0 || edgeCalls != 0 {
		t.Fatalf("empty store invoked callbacks: entities=%d edges=%d", entityCalls, edgeCalls)
	}
}

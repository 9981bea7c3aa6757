// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import (
	"errors"
	"testing"
)

func TestAddRelationTypeFindByIDAndName(t *testing.T) {
	s := newTestStore(t)
	r, err := s.AddRelationType("connects")
	if err != nil {
		t.Fatalf("AddRelationType: %v", err)
	}
	if r.ID != 1 {
		t.Fatalf("ID = %d, want 1", r.ID)
	}
	byID, err := s.FindRelationTypeByID(r.ID)
	if err != nil {
		t.Fatalf("FindRelationTypeByID: %v", err)
	}
	byName, err := s.FindRelationTypeByName("connects")
	if err != nil {
		t.Fatalf("FindRelationTypeByName: %v", err)
	}
	if byID != byName {
		t.Fatalf("FindRelationTypeByID and FindRelationTypeByName diverged")
	}
}

func TestAddRelationTypeDuplicateNameRejected(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddRelationType("r"); err != nil {
		t.Fatalf("first AddRelationType: %v", err)
	}
	if _, err := s.AddRelationType("r"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("duplicate AddRelationType = %v, want ErrInvalidArgument", err)
	}
}

// Removing a relation type leaves referencing edges in place with a
// RelationTypeID that no longer resolves.
func TestRemoveRelationTypeDoesNotCascadeToEdges(t *testing.T) {
	s := newTestStore(t)
	a, err := s.AddEntity(0, "A")
	if err != nil {
		t.Fatalf("AddEntity A: %v", err)
	}
	b, err := s.AddEntity(0, "B")
	if err != nil {
		t.Fatalf("AddEntity B: %v", err)
	}
	rel, err := s.AddRelationType("r")
	if err != nil {
		t.Fatalf("AddRelationType: %v", err)
	}
	edge, err := s.AddEdge(a.ID, b.ID, rel.ID, 1.0)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	if err := s.RemoveRelationType(rel.ID); err != nil {
		t.Fatalf("RemoveRelationType: %v", err)
	}
	if _, err := s.FindRelationTypeByID(rel.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindRelationTypeByID after removal = %v, want ErrNotFound", err)
	}

	fwd := s.GetAdjList(a.ID)
	if fwd == nil || len(fwd.Edges) != 1 || fwd.Edges[0].ID != edge.ID {
		t.Fatalf("edge should survive relation type removal: %+v", fwd)
	}
	if fwd.Edges[0].RelationTypeID != rel.ID {
		t.Fatalf("edge's RelationTypeID changed, want it to remain the dangling %d", rel.ID)
	}
}

func TestRemoveRelationTypeNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.RemoveRelationType(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("RemoveRelationType(999) = %v, want ErrNotFound", err)
	}
}

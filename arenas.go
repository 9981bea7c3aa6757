// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import (
	"github.com/eavgraph/eavg/internal/arena"
	"github.com/eavgraph/eavg/internal/strmap"
)

// entityArena owns entity records and their interned names.
type entityArena struct {
	records *arena.Arena[Entity]
	names   *arena.Bytes
}

func newEntityArena(blockSize int) *entityArena {
	return &entityArena{
		records: arena.New[Entity](blockSize),
		names:   arena.NewBytes(blockSize),
	}
}

// attributeArena owns attribute and relation-type records and their
// interned names. Relation types share this arena rather than getting a
// fifth one; they are small, rarely churned, and name-interned the same
// way attributes are.
type attributeArena struct {
	records  *arena.Arena[Attribute]
	relTypes *arena.Arena[RelationType]
	names    *arena.Bytes
}

func newAttributeArena(blockSize int) *attributeArena {
	return &attributeArena{
		records:  arena.New[Attribute](blockSize),
		relTypes: arena.New[RelationType](blockSize),
		names:    arena.NewBytes(blockSize),
	}
}

// valueArena owns value records (the backing storage of the growable
// per-entity sequences), the list headers, and the string/binary
// payloads the records carry.
type valueArena struct {
	records *arena.Arena[ValueRecord]
	lists   *arena.Arena[ValueList]
	payload *arena.Bytes
}

func newValueArena(blockSize int) *valueArena {
	return &valueArena{
		records: arena.New[ValueRecord](blockSize),
		lists:   arena.New[ValueList](blockSize),
		payload: arena.NewBytes(blockSize),
	}
}

// newList allocates a value-list header for owner with arena lifetime.
func (v *valueArena) newList(owner uint64) *ValueList {
	l := v.lists.AllocOne()
	l.Owner = owner
	return l
}

// edgeArena owns edge records, adjacency-list headers, interned labels,
// and its own intern table for default labels. The intern table is
// keyed here, not piggybacked on relTypesByName: labels and relation
// type names are different namespaces even when their bytes coincide.
type edgeArena struct {
	records  *arena.Arena[EdgeRecord] // backs the growable per-AdjList slices
	adjLists *arena.Arena[AdjList]
	labels   *arena.Bytes
	intern   *strmap.Map[string]
}

func newEdgeArena(blockSize int) *edgeArena {
	return &edgeArena{
		records:  arena.New[EdgeRecord](blockSize),
		adjLists: arena.New[AdjList](blockSize),
		labels:   arena.NewBytes(blockSize),
		intern:   strmap.New[string](64),
	}
}

// newList allocates an adjacency-list header for owner with arena
// lifetime.
func (e *edgeArena) newList(owner uint64) *AdjList {
	l := e.adjLists.AllocOne()
	l.Owner = owner
	return l
}

// internLabel returns a pointer-identity-stable copy of label, reusing a
// prior copy if one with the same bytes was already interned.
func (e *edgeArena) internLabel(label string) string {
	if label == "" {
		return ""
	}
	if existing, ok := e.intern.Get(label); ok {
		return existing
	}
	copy := e.labels.String(label)
	e.intern.Put(copy, copy)
	return copy
}

const (
	initialEdgeListCap  = 4
	initialValueListCap = 4
)

// growEdges appends rec to list, arena-reallocating (geometric doubling)
// when the backing array is full. The old backing array stays allocated
// in the arena but unreferenced; interior pointers into it remain valid
// until the store is closed.
func growEdges(a *arena.Arena[EdgeRecord], list []EdgeRecord, rec EdgeRecord) []EdgeRecord {
	if list == nil {
		list = a.Alloc(initialEdgeListCap)[:0]
	} else if len(list) == cap(list) {
		list = a.Grow(list[:len(list):len(list)], cap(list)*2)[:len(list)]
	}
	return append(list, rec)
}

// growValues appends rec to list with the same arena-backed geometric
// growth discipline as growEdges.
func growValues(a *arena.Arena[ValueRecord], list []ValueRecord, rec ValueRecord) []ValueRecord {
	if list == nil {
		list = a.Alloc(initialValueListCap)[:0]
	} else if len(list) == cap(list) {
		list = a.Grow(list[:len(list):len(list)], cap(list)*2)[:len(list)]
	}
	return append(list, rec)
}

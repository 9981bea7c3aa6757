// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import (
	"time"

	"github.com/eavgraph/eavg/internal/eaverrors"
)

// AddEdge is the convenience form of AddEdgeEx: it resolves relTypeID,
// derives a default label from the relation type's name (interned into
// the edge arena so the label outlives any later relation-type removal),
// stamps the current wall-clock time, and sets direction to DirOut.
func (s *Store) AddEdge(src, tgt, relTypeID uint64, weight float64) (*EdgeRecord, error) {
	s.lockWrite()
	defer s.unlockWrite()

	rel, ok := s.relTypesByID.Get(relTypeID)
	if !ok {
		return nil, eaverrors.NotFound("relation type %d not found", relTypeID)
	}
	label := s.edgeArena.internLabel(rel.Name)
	ts := uint64(time.Now().UnixMilli())
	return s.addEdgeExLocked(src, tgt, relTypeID, weight, DirOut, label, ts)
}

// AddEdgeEx adds a fully-specified edge. label may be "" (absent).
func (s *Store) AddEdgeEx(src, tgt, relTypeID uint64, weight float64, direction EdgeDirection, label string, timestamp uint64) (*EdgeRecord, error) {
	s.lockWrite()
	defer s.unlockWrite()
	interned := s.edgeArena.internLabel(label)
	return s.addEdgeExLocked(src, tgt, relTypeID, weight, direction, interned, timestamp)
}

func (s *Store) addEdgeExLocked(src, tgt, relTypeID uint64, weight float64, direction EdgeDirection, internedLabel string, timestamp uint64) (*EdgeRecord, error) {
	if _, ok := s.entitiesByID.Get(src); !ok {
		return nil, eaverrors.NotFound("entity %d not found", src)
	}
	if _, ok := s.entitiesByID.Get(tgt); !ok {
		return nil, eaverrors.NotFound("entity %d not found", tgt)
	}

	rec := EdgeRecord{
		ID:             s.nextEdgeID,
		RelationTypeID: relTypeID,
		TargetEntity:   tgt,
		Weight:         weight,
		Direction:      direction,
		Label:          internedLabel,
		Timestamp:      timestamp,
	}
	s.nextEdgeID++

	fwd, ok := s.adjBySource.Get(src)
	if !ok {
		fwd = s.edgeArena.newList(src)
		s.adjBySource.Put(src, fwd)
	}
	fwd.Edges = growEdges(s.edgeArena.records, fwd.Edges, rec)
	forward := &fwd.Edges[len(fwd.Edges)-1]

	rev, ok := s.adjByTarget.Get(tgt)
	if !ok {
		rev = s.edgeArena.newList(tgt)
		s.adjByTarget.Put(tgt, rev)
	}
	rev.Edges = growEdges(s.edgeArena.records, rev.Edges, rec)

	s.liveEdges++
	s.metrics.edges.Set(float64(s.liveEdges))
	return forward, nil
}

// UpdateEdgeLabel patches the label on both the forward and reverse
// copies of the edge identified by id. Returns ErrNotFound if id appears
// in neither adjacency index.
func (s *Store) UpdateEdgeLabel(id uint64, newLabel string) error {
	s.lockWrite()
	defer s.unlockWrite()
	interned := s.edgeArena.internLabel(newLabel)
	found := false
	s.adjBySource.ForEach(func(_ uint64, list *AdjList) bool {
		if patchEdge(list.Edges, id, func(e *EdgeRecord) { e.Label = interned }) {
			found = true
		}
		return true
	})
	s.adjByTarget.ForEach(func(_ uint64, list *AdjList) bool {
		if patchEdge(list.Edges, id, func(e *EdgeRecord) { e.Label = interned }) {
			found = true
		}
		return true
	})
	if !found {
		return eaverrors.NotFound("edge %d not found", id)
	}
	return nil
}

// UpdateEdgeWeight patches the weight on both the forward and reverse
// copies of the edge identified by id. Returns ErrNotFound if id appears
// in neither adjacency index.
func (s *Store) UpdateEdgeWeight(id uint64, newWeight float64) error {
	s.lockWrite()
	defer s.unlockWrite()
	found := false
	s.adjBySource.ForEach(func(_ uint64, list *AdjList) bool {
		if patchEdge(list.Edges, id, func(e *EdgeRecord) { e.Weight = newWeight }) {
			found = true
		}
		return true
	})
	s.adjByTarget.ForEach(func(_ uint64, list *AdjList) bool {
		if patchEdge(list.Edges, id, func(e *EdgeRecord) { e.Weight = newWeight }) {
			found = true
		}
		return true
	})
	if !found {
		return eaverrors.NotFound("edge %d not found", id)
	}
	return nil
}

// patchEdge finds the first record in edges with the given id and applies
// patch in place, reporting whether a match was found.
func patchEdge(edges []EdgeRecord, id uint64, patch func(*EdgeRecord)) bool {
	for i := range edges {
		if edges[i].ID == id {
			patch(&edges[i])
			return true
		}
	}
	return false
}

// RemoveEdge removes the edge identified by id from both adjacency
// indexes. Returns ErrNotFound only if it appears in neither.
func (s *Store) RemoveEdge(id uint64) error {
	s.lockWrite()
	defer s.unlockWrite()

	removedFwd := false
	s.adjBySource.ForEach(func(_ uint64, list *AdjList) bool {
		if i := indexOfEdge(list.Edges, id); i >= 0 {
			list.Edges = append(list.Edges[:i], list.Edges[i+1:]...)
			removedFwd = true
			return false
		}
		return true
	})
	removedRev := false
	s.adjByTarget.ForEach(func(_ uint64, list *AdjList) bool {
		if i := indexOfEdge(list.Edges, id); i >= 0 {
			list.Edges = append(list.Edges[:i], list.Edges[i+1:]...)
			removedRev = true
			return false
		}
		return true
	})
	if !removedFwd && !removedRev {
		return eaverrors.NotFound("edge %d not found", id)
	}
	s.liveEdges--
	s.metrics.edges.Set(float64(s.liveEdges))
	return nil
}

func indexOfEdge(edges []EdgeRecord, id uint64) int {
	for i, e := range edges {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) countLiveEdgesLocked() int {
	n := 0
	s.adjBySource.ForEach(func(_ uint64, list *AdjList) bool {
		n += len(list.Edges)
		return true
	})
	return n
}

// GetAdjList returns the forward (outgoing) adjacency list for src, or
// nil if no list exists for src. A list whose edges were all removed is
// returned with no edges rather than as nil. The returned value is
// borrowed with store lifetime; callers must not mutate it.
func (s *Store) GetAdjList(src uint64) *AdjList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, _ := s.adjBySource.Get(src)
	return list
}

// GetReverseAdjList returns the reverse (incoming) adjacency list for
// tgt, or nil if no list exists for tgt. As with GetAdjList, a list whose
// edges were all removed is returned with no edges.
func (s *Store) GetReverseAdjList(tgt uint64) *AdjList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, _ := s.adjByTarget.Get(tgt)
	return list
}

// GetFilteredEdges resolves the forward list for entityID if DirOut is
// set in directionMask and the reverse list if DirIn is set, optionally
// applying filter, and returns matching records copied into a fresh,
// caller-owned slice. Forward entries precede reverse entries; within
// each, insertion order is preserved.
func (s *Store) GetFilteredEdges(entityID uint64, directionMask EdgeDirection, filter func(EdgeRecord) bool) []EdgeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []EdgeRecord
	if directionMask&DirOut != 0 {
		if list, ok := s.adjBySource.Get(entityID); ok {
			for _, e := range list.Edges {
				if filter == nil || filter(e) {
					out = append(out, e)
				}
			}
		}
	}
	if directionMask&DirIn != 0 {
		if list, ok := s.adjByTarget.Get(entityID); ok {
			for _, e := range list.Edges {
				if filter == nil || filter(e) {
					out = append(out, e)
				}
			}
		}
	}
	return out
}

// ForEachEdge invokes fn once per live edge in the forward (source-keyed)
// index, which holds exactly one copy of every live edge. Iteration
// stops early if fn returns false. fn must not call back into the store.
func (s *Store) ForEachEdge(fn func(e EdgeRecord) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.adjBySource.ForEach(func(_ uint64, list *AdjList) bool {
		for _, e := range list.Edges {
			if !fn(e) {
				return false
			}
		}
		return true
	})
}

// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import "github.com/eavgraph/eavg/internal/eaverrors"

// AddEntity creates a new entity with the given typeId and optional name
// (pass "" for unnamed) and returns it. A non-empty name that collides
// with an existing entity's name is rejected with ErrInvalidArgument:
// the name index must always resolve to the entity that carries the
// name, which a silent overwrite would break for the previous holder.
func (s *Store) AddEntity(typeID uint32, name string) (*Entity, error) {
	s.lockWrite()
	defer s.unlockWrite()
	return s.addEntityLocked(typeID, name)
}

func (s *Store) addEntityLocked(typeID uint32, name string) (*Entity, error) {
	if name != "" {
		if _, ok := s.entitiesByName.Get(name); ok {
			return nil, eaverrors.InvalidArgument("entity name %q already in use", name)
		}
	}

	rec := s.entityArena.records.AllocOne()
	rec.ID = s.nextEntityID
	rec.TypeID = typeID
	if name != "" {
		rec.Name = s.entityArena.names.String(name)
	}
	s.nextEntityID++

	s.entitiesByID.Put(rec.ID, rec)
	if rec.Name != "" {
		s.entitiesByName.Put(rec.Name, rec)
	}
	s.metrics.entities.Set(float64(s.entitiesByID.Len()))
	return rec, nil
}

// FindEntityByID returns the entity with the given id, or ErrNotFound.
func (s *Store) FindEntityByID(id uint64) (*Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entitiesByID.Get(id)
	if !ok {
		return nil, eaverrors.NotFound("entity %d not found", id)
	}
	return e, nil
}

// FindEntityByName returns the entity with the given name, or ErrNotFound.
func (s *Store) FindEntityByName(name string) (*Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entitiesByName.Get(name)
	if !ok {
		return nil, eaverrors.NotFound("entity %q not found", name)
	}
	return e, nil
}

// RemoveEntity deletes the entity with the given id, dropping its value
// list and both adjacency-index buckets, and compacting it out of every
// surviving adjacency list in both directions, so neither index retains
// an edge naming the removed entity as source or target. Returns
// ErrNotFound if no such entity exists.
func (s *Store) RemoveEntity(id uint64) error {
	s.lockWrite()
	defer s.unlockWrite()
	return s.removeEntityLocked(id)
}

func (s *Store) removeEntityLocked(id uint64) error {
	ent, ok := s.entitiesByID.Get(id)
	if !ok {
		return eaverrors.NotFound("entity %d not found", id)
	}

	// Capture this entity's own outgoing edge ids before dropping its
	// forward bucket: the symmetric sweep below needs them to find the
	// copies of those same edges living in other entities' reverse
	// buckets.
	var outgoingIDs map[uint64]struct{}
	if fwd, ok := s.adjBySource.Get(id); ok && len(fwd.Edges) > 0 {
		outgoingIDs = make(map[uint64]struct{}, len(fwd.Edges))
		for _, e := range fwd.Edges {
			outgoingIDs[e.ID] = struct{}{}
		}
	}

	s.entitiesByID.Remove(id)
	if ent.Name != "" {
		s.entitiesByName.Remove(ent.Name)
	}
	if list, ok := s.valuesByEntity.Get(id); ok {
		s.liveValues -= len(list.Values)
	}
	s.valuesByEntity.Remove(id)
	s.adjBySource.Remove(id)
	s.adjByTarget.Remove(id)

	// Forward sweep: drop edges in any surviving source bucket whose
	// target was the removed entity.
	s.adjBySource.ForEach(func(_ uint64, list *AdjList) bool {
		list.Edges = compactEdges(list.Edges, func(e EdgeRecord) bool {
			return e.TargetEntity == id
		})
		return true
	})

	// Reverse sweep: drop edges in any surviving target bucket whose id
	// matches one of the removed entity's own outgoing edges.
	if outgoingIDs != nil {
		s.adjByTarget.ForEach(func(_ uint64, list *AdjList) bool {
			list.Edges = compactEdges(list.Edges, func(e EdgeRecord) bool {
				_, match := outgoingIDs[e.ID]
				return match
			})
			return true
		})
	}

	s.liveEdges = s.countLiveEdgesLocked()
	s.metrics.entities.Set(float64(s.entitiesByID.Len()))
	s.metrics.edges.Set(float64(s.liveEdges))
	s.metrics.values.Set(float64(s.liveValues))
	return nil
}

// compactEdges returns edges with every element matching drop removed,
// preserving order, by shift-left compaction over the existing backing
// array (no new arena allocation needed since the result is never
// longer than the input).
func compactEdges(edges []EdgeRecord, drop func(EdgeRecord) bool) []EdgeRecord {
	out := edges[:0]
	for _, e := range edges {
		if !drop(e) {
			out = append(out, e)
		}
	}
	return out
}

// ForEachEntity invokes fn for every live entity in table order. Iteration
// stops early if fn returns false. fn must not call back into the store.
func (s *Store) ForEachEntity(fn func(e *Entity) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.entitiesByID.ForEach(func(_ uint64, e *Entity) bool {
		return fn(e)
	})
}

// FindEntitiesByType returns every live entity whose TypeID equals typeID,
// in a freshly allocated, caller-owned slice.
func (s *Store) FindEntitiesByType(typeID uint32) []*Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Entity
	s.entitiesByID.ForEach(func(_ uint64, e *Entity) bool {
		if e.TypeID == typeID {
			out = append(out, e)
		}
		return true
	})
	return out
}

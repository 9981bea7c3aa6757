// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import "github.com/eavgraph/eavg/internal/eaverrors"

// AddRelationType creates a new named edge category. Name must be
// non-empty and unique among relation types.
func (s *Store) AddRelationType(name string) (*RelationType, error) {
	s.lockWrite()
	defer s.unlockWrite()
	return s.addRelationTypeLocked(name)
}

func (s *Store) addRelationTypeLocked(name string) (*RelationType, error) {
	if name == "" {
		return nil, eaverrors.InvalidArgument("relation type name must not be empty")
	}
	if _, ok := s.relTypesByName.Get(name); ok {
		return nil, eaverrors.InvalidArgument("relation type name %q already in use", name)
	}

	rec := s.attributeArena.relTypes.AllocOne()
	rec.ID = s.nextRelationID
	rec.Name = s.attributeArena.names.String(name)
	s.nextRelationID++

	s.relTypesByID.Put(rec.ID, rec)
	s.relTypesByName.Put(rec.Name, rec)
	s.metrics.relTypes.Set(float64(s.relTypesByID.Len()))
	return rec, nil
}

// FindRelationTypeByID returns the relation type with the given id, or
// ErrNotFound.
func (s *Store) FindRelationTypeByID(id uint64) (*RelationType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.relTypesByID.Get(id)
	if !ok {
		return nil, eaverrors.NotFound("relation type %d not found", id)
	}
	return r, nil
}

// FindRelationTypeByName returns the relation type with the given name,
// or ErrNotFound.
func (s *Store) FindRelationTypeByName(name string) (*RelationType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.relTypesByName.Get(name)
	if !ok {
		return nil, eaverrors.NotFound("relation type %q not found", name)
	}
	return r, nil
}

// RemoveRelationType deletes the relation type with the given id from
// both indexes. It does not cascade to edges referencing it: those edges
// keep a RelationTypeID that no longer resolves.
func (s *Store) RemoveRelationType(id uint64) error {
	s.lockWrite()
	defer s.unlockWrite()

	rel, ok := s.relTypesByID.Get(id)
	if !ok {
		return eaverrors.NotFound("relation type %d not found", id)
	}
	s.relTypesByID.Remove(id)
	s.relTypesByName.Remove(rel.Name)
	s.metrics.relTypes.Set(float64(s.relTypesByID.Len()))
	return nil
}

// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import "github.com/eavgraph/eavg/internal/eaverrors"

// AddAttribute creates a new attribute descriptor with an immutable
// dataType. Name must be non-empty and unique among attributes.
func (s *Store) AddAttribute(name string, dataType DataType) (*Attribute, error) {
	s.lockWrite()
	defer s.unlockWrite()
	return s.addAttributeLocked(name, dataType)
}

func (s *Store) addAttributeLocked(name string, dataType DataType) (*Attribute, error) {
	if name == "" {
		return nil, eaverrors.InvalidArgument("attribute name must not be empty")
	}
	if _, ok := s.attributesByName.Get(name); ok {
		return nil, eaverrors.InvalidArgument("attribute name %q already in use", name)
	}

	rec := s.attributeArena.records.AllocOne()
	rec.ID = s.nextAttributeID
	rec.Name = s.attributeArena.names.String(name)
	rec.DataType = dataType
	s.nextAttributeID++

	s.attributesByID.Put(rec.ID, rec)
	s.attributesByName.Put(rec.Name, rec)
	s.metrics.attributes.Set(float64(s.attributesByID.Len()))
	return rec, nil
}

// FindAttributeByID returns the attribute with the given id, or
// ErrNotFound.
func (s *Store) FindAttributeByID(id uint64) (*Attribute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attributesByID.Get(id)
	if !ok {
		return nil, eaverrors.NotFound("attribute %d not found", id)
	}
	return a, nil
}

// FindAttributeByName returns the attribute with the given name, or
// ErrNotFound.
func (s *Store) FindAttributeByName(name string) (*Attribute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.attributesByName.Get(name)
	if !ok {
		return nil, eaverrors.NotFound("attribute %q not found", name)
	}
	return a, nil
}

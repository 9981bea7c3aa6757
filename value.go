// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import "github.com/eavgraph/eavg/internal/eaverrors"

// AddIntValue appends an INT value record to entityID's value list for
// attributeID. Returns ErrTypeMismatch if the attribute's dataType is not
// Int, ErrNotFound if either id is unknown.
func (s *Store) AddIntValue(entityID, attributeID uint64, v int64) (*ValueRecord, error) {
	s.lockWrite()
	defer s.unlockWrite()
	return s.addValueLocked(entityID, attributeID, Int, func(rec *ValueRecord) {
		rec.intVal = v
	})
}

// AddDoubleValue appends a DOUBLE value record.
func (s *Store) AddDoubleValue(entityID, attributeID uint64, v float64) (*ValueRecord, error) {
	s.lockWrite()
	defer s.unlockWrite()
	return s.addValueLocked(entityID, attributeID, Double, func(rec *ValueRecord) {
		rec.doubleVal = v
	})
}

// AddStringValue appends a STRING value record. The string is copied into
// the value arena.
func (s *Store) AddStringValue(entityID, attributeID uint64, v string) (*ValueRecord, error) {
	s.lockWrite()
	defer s.unlockWrite()
	return s.addValueLocked(entityID, attributeID, String, func(rec *ValueRecord) {
		rec.stringVal = s.valueArena.payload.String(v)
	})
}

// AddBinaryValue appends a BINARY value record. The bytes are copied into
// the value arena.
func (s *Store) AddBinaryValue(entityID, attributeID uint64, v []byte) (*ValueRecord, error) {
	s.lockWrite()
	defer s.unlockWrite()
	return s.addValueLocked(entityID, attributeID, Binary, func(rec *ValueRecord) {
		rec.binaryVal = s.valueArena.payload.Bytes(v)
	})
}

// AddEntityRefValue appends an ENTITY value record referencing refEntity.
// refEntity is an opaque reference and is not required to currently
// exist; no referential-integrity check is performed on it.
func (s *Store) AddEntityRefValue(entityID, attributeID, refEntity uint64) (*ValueRecord, error) {
	s.lockWrite()
	defer s.unlockWrite()
	return s.addValueLocked(entityID, attributeID, EntityRef, func(rec *ValueRecord) {
		rec.entityVal = refEntity
	})
}

// addValueLocked implements the shared add-value sequence: verify the
// attribute exists and matches dataType, assign the next value id, let
// setPayload fill in the typed field, append to the entity's value list
// (creating it on demand), and invoke the attribute's hook synchronously
// while still holding the write lock. A hook must not call back into the
// store; the lock is not reentrant.
func (s *Store) addValueLocked(entityID, attributeID uint64, dt DataType, setPayload func(*ValueRecord)) (*ValueRecord, error) {
	if _, ok := s.entitiesByID.Get(entityID); !ok {
		return nil, eaverrors.NotFound("entity %d not found", entityID)
	}
	attr, ok := s.attributesByID.Get(attributeID)
	if !ok {
		return nil, eaverrors.NotFound("attribute %d not found", attributeID)
	}
	if attr.DataType != dt {
		return nil, eaverrors.TypeMismatch("attribute %q has dataType %s, not %s", attr.Name, attr.DataType, dt)
	}

	rec := ValueRecord{
		ID:          s.nextValueID,
		EntityID:    entityID,
		AttributeID: attributeID,
		dataType:    dt,
	}
	setPayload(&rec)
	s.nextValueID++

	list, ok := s.valuesByEntity.Get(entityID)
	if !ok {
		list = s.valueArena.newList(entityID)
		s.valuesByEntity.Put(entityID, list)
	}
	list.Values = growValues(s.valueArena.records, list.Values, rec)
	stored := &list.Values[len(list.Values)-1]

	if attr.Hook != nil {
		attr.Hook(attr, stored, attr.UserData)
	}

	s.liveValues++
	s.metrics.values.Set(float64(s.liveValues))
	return stored, nil
}

// GetValues returns the value list belonging to entityID, or nil if no
// value was ever recorded for the entity (which is not itself an error).
// If every value was removed, the result is empty but not nil.
func (s *Store) GetValues(entityID uint64) []ValueRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, ok := s.valuesByEntity.Get(entityID)
	if !ok {
		return nil
	}
	return list.Values
}

// RemoveValue removes the value record with the given id from whichever
// entity's value list holds it, by linear scan across all lists (O(total
// values)) followed by shift-left compaction. Returns ErrNotFound if no
// such value exists.
func (s *Store) RemoveValue(id uint64) error {
	s.lockWrite()
	defer s.unlockWrite()

	found := false
	s.valuesByEntity.ForEach(func(_ uint64, list *ValueList) bool {
		for i, v := range list.Values {
			if v.ID == id {
				list.Values = append(list.Values[:i], list.Values[i+1:]...)
				found = true
				return false
			}
		}
		return true
	})
	if !found {
		return eaverrors.NotFound("value %d not found", id)
	}
	s.liveValues--
	s.metrics.values.Set(float64(s.liveValues))
	return nil
}

// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/eavgraph/eavg/internal/eaverrors"
)

var (
	snapshotMagic   = [8]byte{'E', 'A', 'V', 'G', 'P', 'E', 'R', 'S'}
	snapshotVersion = uint32(1)
)

// Save writes a versioned, self-describing binary snapshot of the entire
// store to path: header, entities, attributes, relation types, values,
// edges, then an xxhash64 trailer checksum of every preceding byte. All
// integers are little-endian regardless of host.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := time.Now()

	var buf bytes.Buffer
	buf.Write(snapshotMagic[:])
	writeU32(&buf, snapshotVersion)

	writeU64(&buf, uint64(s.entitiesByID.Len()))
	s.entitiesByID.ForEach(func(_ uint64, e *Entity) bool {
		writeU64(&buf, e.ID)
		writeU32(&buf, e.TypeID)
		writeString(&buf, e.Name)
		return true
	})

	writeU64(&buf, uint64(s.attributesByID.Len()))
	s.attributesByID.ForEach(func(_ uint64, a *Attribute) bool {
		writeU64(&buf, a.ID)
		writeU32(&buf, uint32(a.DataType))
		writeString(&buf, a.Name)
		return true
	})

	writeU64(&buf, uint64(s.relTypesByID.Len()))
	s.relTypesByID.ForEach(func(_ uint64, r *RelationType) bool {
		writeU64(&buf, r.ID)
		writeString(&buf, r.Name)
		return true
	})

	totalValues := 0
	s.valuesByEntity.ForEach(func(_ uint64, list *ValueList) bool {
		totalValues += len(list.Values)
		return true
	})
	writeU64(&buf, uint64(totalValues))
	s.valuesByEntity.ForEach(func(_ uint64, list *ValueList) bool {
		for _, v := range list.Values {
			writeU64(&buf, v.ID)
			writeU64(&buf, v.EntityID)
			writeU64(&buf, v.AttributeID)
			writeU32(&buf, uint32(v.dataType))
			switch v.dataType {
			case Int:
				writeI64(&buf, v.intVal)
			case Double:
				writeF64(&buf, v.doubleVal)
			case String:
				writeString(&buf, v.stringVal)
			case EntityRef:
				writeU64(&buf, v.entityVal)
			case Binary:
				writeBytes(&buf, v.binaryVal)
			}
		}
		return true
	})

	writeU64(&buf, uint64(s.countLiveEdgesLocked()))
	s.adjBySource.ForEach(func(src uint64, list *AdjList) bool {
		for _, e := range list.Edges {
			writeU64(&buf, e.ID)
			writeU64(&buf, src)
			writeU64(&buf, e.TargetEntity)
			writeU64(&buf, e.RelationTypeID)
			writeF64(&buf, e.Weight)
			writeU32(&buf, uint32(e.Direction))
			writeU64(&buf, e.Timestamp)
			writeString(&buf, e.Label)
		}
		return true
	})

	checksum := xxhash.Sum64(buf.Bytes())
	writeU64(&buf, checksum)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eaverrors.IO(err, "writing snapshot %q", path)
	}
	s.log.WithFields(map[string]any{
		"path":       path,
		"entities":   s.entitiesByID.Len(),
		"attributes": s.attributesByID.Len(),
		"edges":      s.liveEdges,
		"elapsed":    time.Since(start),
	}).Info("eavg: snapshot saved")
	return nil
}

// Load replaces the store's entire contents with the snapshot at path.
// The checksum trailer is verified and the whole body decoded before any
// section is applied, so on any error the store is left completely
// unmodified.
func (s *Store) Load(path string) error {
	start := time.Now()
	raw, err := os.ReadFile(path)
	if err != nil {
		return eaverrors.IO(err, "reading snapshot %q", path)
	}

	if len(raw) < 8+4+8 {
		return eaverrors.SnapshotCorrupt("snapshot %q too short", path)
	}
	body, trailer := raw[:len(raw)-8], raw[len(raw)-8:]
	wantChecksum := binary.LittleEndian.Uint64(trailer)
	gotChecksum := xxhash.Sum64(body)
	if wantChecksum != gotChecksum {
		if s.opts.RequireSnapshotChecksum {
			return eaverrors.SnapshotCorrupt("snapshot %q checksum mismatch", path)
		}
		s.log.WithFields(map[string]any{"path": path}).Warn("eavg: snapshot checksum mismatch, loading anyway")
	}

	r := bytes.NewReader(body)
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil || magic != snapshotMagic {
		return eaverrors.SnapshotCorrupt("snapshot %q has bad magic", path)
	}
	version, err := readU32(r)
	if err != nil {
		return eaverrors.SnapshotCorrupt("snapshot %q: %v", path, err)
	}
	if version != snapshotVersion {
		return eaverrors.SnapshotCorrupt("snapshot %q has unsupported version %d", path, version)
	}

	loaded, err := decodeSnapshotBody(r)
	if err != nil {
		return eaverrors.SnapshotCorrupt("snapshot %q: %v", path, err)
	}

	s.lockWrite()
	defer s.unlockWrite()
	s.installSnapshot(loaded)
	s.log.WithFields(map[string]any{
		"path":       path,
		"entities":   s.entitiesByID.Len(),
		"attributes": s.attributesByID.Len(),
		"edges":      s.liveEdges,
		"elapsed":    time.Since(start),
	}).Info("eavg: snapshot loaded")
	return nil
}

// decodedSnapshot holds a fully-parsed snapshot body before it is
// installed into a live Store, so a malformed snapshot never mutates the
// caller's store.
type decodedSnapshot struct {
	entities   []Entity
	attributes []Attribute
	relTypes   []RelationType
	values     []ValueRecord
	edges      []decodedEdge
}

type decodedEdge struct {
	EdgeRecord
	Src uint64
}

func decodeSnapshotBody(r *bytes.Reader) (*decodedSnapshot, error) {
	var out decodedSnapshot

	entityCount, err := readU64(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < entityCount; i++ {
		id, err := readU64(r)
		if err != nil {
			return nil, err
		}
		typeID, err := readU32(r)
		if err != nil {
			return nil, err
		}
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		out.entities = append(out.entities, Entity{ID: id, TypeID: typeID, Name: name})
	}

	attrCount, err := readU64(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < attrCount; i++ {
		id, err := readU64(r)
		if err != nil {
			return nil, err
		}
		dt, err := readU32(r)
		if err != nil {
			return nil, err
		}
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		out.attributes = append(out.attributes, Attribute{ID: id, DataType: DataType(dt), Name: name})
	}

	relCount, err := readU64(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < relCount; i++ {
		id, err := readU64(r)
		if err != nil {
			return nil, err
		}
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		out.relTypes = append(out.relTypes, RelationType{ID: id, Name: name})
	}

	valueCount, err := readU64(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < valueCount; i++ {
		id, err := readU64(r)
		if err != nil {
			return nil, err
		}
		entityID, err := readU64(r)
		if err != nil {
			return nil, err
		}
		attributeID, err := readU64(r)
		if err != nil {
			return nil, err
		}
		dt, err := readU32(r)
		if err != nil {
			return nil, err
		}
		rec := ValueRecord{ID: id, EntityID: entityID, AttributeID: attributeID, dataType: DataType(dt)}
		switch DataType(dt) {
		case Int:
			v, err := readI64(r)
			if err != nil {
				return nil, err
			}
			rec.intVal = v
		case Double:
			v, err := readF64(r)
			if err != nil {
				return nil, err
			}
			rec.doubleVal = v
		case String:
			v, err := readString(r)
			if err != nil {
				return nil, err
			}
			rec.stringVal = v
		case EntityRef:
			v, err := readU64(r)
			if err != nil {
				return nil, err
			}
			rec.entityVal = v
		case Binary:
			v, err := readBytes(r)
			if err != nil {
				return nil, err
			}
			rec.binaryVal = v
		}
		out.values = append(out.values, rec)
	}

	edgeCount, err := readU64(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < edgeCount; i++ {
		id, err := readU64(r)
		if err != nil {
			return nil, err
		}
		src, err := readU64(r)
		if err != nil {
			return nil, err
		}
		tgt, err := readU64(r)
		if err != nil {
			return nil, err
		}
		relTypeID, err := readU64(r)
		if err != nil {
			return nil, err
		}
		weight, err := readF64(r)
		if err != nil {
			return nil, err
		}
		direction, err := readU32(r)
		if err != nil {
			return nil, err
		}
		timestamp, err := readU64(r)
		if err != nil {
			return nil, err
		}
		label, err := readString(r)
		if err != nil {
			return nil, err
		}
		out.edges = append(out.edges, decodedEdge{
			EdgeRecord: EdgeRecord{
				ID: id, RelationTypeID: relTypeID, TargetEntity: tgt, Weight: weight,
				Direction: EdgeDirection(direction), Label: label, Timestamp: timestamp,
			},
			Src: src,
		})
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after edges section", r.Len())
	}
	return &out, nil
}

// installSnapshot replaces s's indexes/arenas/counters with a fresh store
// built from snap, rebuilding both adjacency indexes from the decoded
// edge list. Must be called with s.mu held for writing.
func (s *Store) installSnapshot(snap *decodedSnapshot) {
	opts := s.opts
	fresh := NewStore(opts, WithLogger(s.log))

	for _, e := range snap.entities {
		rec := fresh.entityArena.records.AllocOne()
		rec.ID = e.ID
		rec.TypeID = e.TypeID
		if e.Name != "" {
			rec.Name = fresh.entityArena.names.String(e.Name)
		}
		fresh.entitiesByID.Put(rec.ID, rec)
		if rec.Name != "" {
			fresh.entitiesByName.Put(rec.Name, rec)
		}
		bumpCounter(&fresh.nextEntityID, rec.ID)
	}

	for _, a := range snap.attributes {
		rec := fresh.attributeArena.records.AllocOne()
		rec.ID = a.ID
		rec.DataType = a.DataType
		rec.Name = fresh.attributeArena.names.String(a.Name)
		fresh.attributesByID.Put(rec.ID, rec)
		fresh.attributesByName.Put(rec.Name, rec)
		bumpCounter(&fresh.nextAttributeID, rec.ID)
	}

	for _, rt := range snap.relTypes {
		rec := fresh.attributeArena.relTypes.AllocOne()
		rec.ID = rt.ID
		rec.Name = fresh.attributeArena.names.String(rt.Name)
		fresh.relTypesByID.Put(rec.ID, rec)
		fresh.relTypesByName.Put(rec.Name, rec)
		bumpCounter(&fresh.nextRelationID, rec.ID)
	}

	for _, v := range snap.values {
		rec := v
		switch rec.dataType {
		case String:
			rec.stringVal = fresh.valueArena.payload.String(rec.stringVal)
		case Binary:
			rec.binaryVal = fresh.valueArena.payload.Bytes(rec.binaryVal)
		}
		list, ok := fresh.valuesByEntity.Get(rec.EntityID)
		if !ok {
			list = fresh.valueArena.newList(rec.EntityID)
			fresh.valuesByEntity.Put(rec.EntityID, list)
		}
		list.Values = growValues(fresh.valueArena.records, list.Values, rec)
		bumpCounter(&fresh.nextValueID, rec.ID)
	}

	for _, de := range snap.edges {
		rec := de.EdgeRecord
		rec.Label = fresh.edgeArena.internLabel(rec.Label)

		fwd, ok := fresh.adjBySource.Get(de.Src)
		if !ok {
			fwd = fresh.edgeArena.newList(de.Src)
			fresh.adjBySource.Put(de.Src, fwd)
		}
		fwd.Edges = growEdges(fresh.edgeArena.records, fwd.Edges, rec)

		rev, ok := fresh.adjByTarget.Get(rec.TargetEntity)
		if !ok {
			rev = fresh.edgeArena.newList(rec.TargetEntity)
			fresh.adjByTarget.Put(rec.TargetEntity, rev)
		}
		rev.Edges = growEdges(fresh.edgeArena.records, rev.Edges, rec)

		bumpCounter(&fresh.nextEdgeID, rec.ID)
	}

	// Copy every field except mu (s.mu is already held by the caller and
	// must keep its identity: overwriting it with fresh's zero-value
	// mutex would make the caller's deferred Unlock panic) and the
	// fields we want to keep from the live store rather than the
	// scratch one NewStore built.
	s.entitiesByID = fresh.entitiesByID
	s.entitiesByName = fresh.entitiesByName
	s.attributesByID = fresh.attributesByID
	s.attributesByName = fresh.attributesByName
	s.relTypesByID = fresh.relTypesByID
	s.relTypesByName = fresh.relTypesByName
	s.valuesByEntity = fresh.valuesByEntity
	s.adjBySource = fresh.adjBySource
	s.adjByTarget = fresh.adjByTarget
	s.entityArena = fresh.entityArena
	s.attributeArena = fresh.attributeArena
	s.valueArena = fresh.valueArena
	s.edgeArena = fresh.edgeArena
	s.nextEntityID = fresh.nextEntityID
	s.nextAttributeID = fresh.nextAttributeID
	s.nextValueID = fresh.nextValueID
	s.nextRelationID = fresh.nextRelationID
	s.nextEdgeID = fresh.nextEdgeID
	s.liveValues = len(snap.values)
	s.liveEdges = len(snap.edges)

	s.metrics.entities.Set(float64(s.entitiesByID.Len()))
	s.metrics.attributes.Set(float64(s.attributesByID.Len()))
	s.metrics.relTypes.Set(float64(s.relTypesByID.Len()))
	s.metrics.values.Set(float64(s.liveValues))
	s.metrics.edges.Set(float64(s.liveEdges))
	// The index maps were just replaced wholesale, so their resize counts
	// reset to 0; reconcile unlockWrite's baseline to match.
	s.metrics.lastIndexResizeTotal = 0
}

func bumpCounter(counter *uint64, id uint64) {
	if id >= *counter {
		*counter = id + 1
	}
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeI64(buf *bytes.Buffer, v int64) {
	writeU64(buf, uint64(v))
}

func writeF64(buf *bytes.Buffer, v float64) {
	writeU64(buf, math.Float64bits(v))
}

func writeString(buf *bytes.Buffer, s string) {
	writeU32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func writeBytes(buf *bytes.Buffer, p []byte) {
	writeU32(buf, uint32(len(p)))
	buf.Write(p)
}

func readU32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("short read: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readU64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("short read: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func readI64(r *bytes.Reader) (int64, error) {
	v, err := readU64(r)
	return int64(v), err
}

func readF64(r *bytes.Reader) (float64, error) {
	v, err := readU64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readU32(r)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("short read: %w", err)
	}
	return string(buf), nil
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("short read: %w", err)
	}
	return buf, nil
}

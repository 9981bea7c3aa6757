// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

// DataType tags the variant a ValueRecord's payload must hold, and is
// fixed for the lifetime of an Attribute.
type DataType uint32

const (
	// Int marks a ValueRecord carrying a signed 64-bit integer.
	Int DataType = iota + 1
	// Double marks a ValueRecord carrying a 64-bit float.
	Double
	// String marks a ValueRecord carrying a UTF-8 string.
	String
	// Binary marks a ValueRecord carrying an opaque byte sequence.
	Binary
	// EntityRef marks a ValueRecord carrying a reference to another
	// entity's id.
	EntityRef
)

func (d DataType) String() string {
	switch d {
	case Int:
		return "INT"
	case Double:
		return "DOUBLE"
	case String:
		return "STRING"
	case Binary:
		return "BINARY"
	case EntityRef:
		return "ENTITY"
	default:
		return "UNKNOWN"
	}
}

// EdgeDirection classifies an edge's traversal semantics. OUT and IN are
// orientation tags recorded on the edge itself (independent of which
// adjacency index a copy lives in); BOTH marks an edge meant to be
// traversable either way. Direction is also used as a bitmask by
// GetFilteredEdges to select which adjacency index(es) to consult.
type EdgeDirection uint32

const (
	DirOut  EdgeDirection = 1
	DirIn   EdgeDirection = 2
	DirBoth EdgeDirection = DirOut | DirIn
)

func (d EdgeDirection) String() string {
	switch d {
	case DirOut:
		return "OUT"
	case DirIn:
		return "IN"
	case DirBoth:
		return "BOTH"
	default:
		return "UNKNOWN"
	}
}

// Entity is a graph node identified by a store-unique id.
type Entity struct {
	ID     uint64
	TypeID uint32
	Name   string // "" means unnamed
}

// Hook is invoked synchronously, under the store's write lock, whenever a
// value record is added for the owning Attribute. Re-entering the store
// from within a Hook is unsafe and unsupported; the lock is not
// reentrant.
type Hook func(attr *Attribute, rec *ValueRecord, userdata any)

// Attribute is a named, typed property schema. Hook and UserData may be
// set directly by the caller after AddAttribute returns; the store never
// writes them itself.
type Attribute struct {
	ID       uint64
	Name     string
	DataType DataType
	Hook     Hook
	UserData any
}

// ValueRecord is one instance of an attribute's value on one entity. Only
// the field matching DataType() is meaningful; use the typed accessors
// rather than reading fields directly.
type ValueRecord struct {
	ID          uint64
	EntityID    uint64
	AttributeID uint64

	dataType  DataType
	intVal    int64
	doubleVal float64
	stringVal string
	binaryVal []byte
	entityVal uint64
}

// DataType reports which variant this record holds.
func (v *ValueRecord) DataType() DataType {
	return v.dataType
}

// IntValue returns the record's integer payload and whether DataType() is
// Int.
func (v *ValueRecord) IntValue() (int64, bool) {
	return v.intVal, v.dataType == Int
}

// DoubleValue returns the record's float payload and whether DataType()
// is Double.
func (v *ValueRecord) DoubleValue() (float64, bool) {
	return v.doubleVal, v.dataType == Double
}

// StringValue returns the record's string payload and whether DataType()
// is String.
func (v *ValueRecord) StringValue() (string, bool) {
	return v.stringVal, v.dataType == String
}

// BinaryValue returns the record's byte payload and whether DataType() is
// Binary. The returned slice is arena-owned and must be treated as
// read-only.
func (v *ValueRecord) BinaryValue() ([]byte, bool) {
	return v.binaryVal, v.dataType == Binary
}

// EntityRefValue returns the record's referenced entity id and whether
// DataType() is EntityRef.
func (v *ValueRecord) EntityRefValue() (uint64, bool) {
	return v.entityVal, v.dataType == EntityRef
}

// RelationType is a named edge category.
type RelationType struct {
	ID   uint64
	Name string
}

// EdgeRecord is a directed, typed, weighted, labeled, timestamped link
// between two entities. It intentionally has no source-entity field: the
// source is implicit in which forward adjacency bucket a copy lives in.
type EdgeRecord struct {
	ID             uint64
	RelationTypeID uint64
	TargetEntity   uint64
	Weight         float64
	Direction      EdgeDirection
	Label          string // "" means absent
	Timestamp      uint64 // milliseconds
}

// AdjList is the ordered sequence of edges sharing a given source
// (forward index) or target (reverse index) entity. Edges is exposed
// read-only by convention; mutate only through the store's edge
// operations.
type AdjList struct {
	Owner uint64
	Edges []EdgeRecord
}

// ValueList is the ordered, append-mostly sequence of value records
// belonging to one entity. Values is exposed read-only by convention;
// mutate only through the store's value operations.
type ValueList struct {
	Owner  uint64
	Values []ValueRecord
}

// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package eavg implements an embeddable, in-process graph database
// combining an entity-attribute-value model for node properties with a
// directed, typed, weighted, labeled, timestamped edge model.
package eavg

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eavgraph/eavg/internal/intmap"
	"github.com/eavgraph/eavg/internal/strmap"
)

// Store is the top-level graph database handle. A zero Store is not
// valid; construct one with NewStore. All public methods are safe for
// concurrent use: Store serializes writers against each other and
// against readers with a single store-wide sync.RWMutex. It does not
// shard or stripe locking for throughput.
type Store struct {
	mu sync.RWMutex

	opts Options
	log  *logrus.Logger

	entitiesByID   *intmap.Map[*Entity]
	entitiesByName *strmap.Map[*Entity]

	attributesByID   *intmap.Map[*Attribute]
	attributesByName *strmap.Map[*Attribute]

	relTypesByID   *intmap.Map[*RelationType]
	relTypesByName *strmap.Map[*RelationType]

	valuesByEntity *intmap.Map[*ValueList]

	adjBySource *intmap.Map[*AdjList]
	adjByTarget *intmap.Map[*AdjList]

	entityArena    *entityArena
	attributeArena *attributeArena
	valueArena     *valueArena
	edgeArena      *edgeArena

	nextEntityID    uint64
	nextAttributeID uint64
	nextValueID     uint64
	nextRelationID  uint64
	nextEdgeID      uint64

	// liveEdges/liveValues track how many records are currently present
	// across the adjacency/value indexes (removal is logical, so the
	// monotonic id counters cannot serve as live counts).
	liveEdges  int
	liveValues int

	metrics *metricsSet
}

// discardLogger returns a logrus.Logger with output discarded, used when
// no caller-supplied logger is given so embedding this library never
// prints to a consuming application's stdout uninvited.
func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// NewStore constructs an empty Store. Options may be zero-value-derived
// via DefaultOptions and overridden with functional Option arguments.
func NewStore(options Options, opts ...Option) *Store {
	for _, o := range opts {
		o(&options)
	}
	if options.InitialIndexCapacity <= 0 {
		options.InitialIndexCapacity = DefaultOptions().InitialIndexCapacity
	}
	log := options.Logger
	if log == nil {
		log = discardLogger()
	}

	cap := options.InitialIndexCapacity
	s := &Store{
		opts: options,
		log:  log,

		entitiesByID:   intmap.New[*Entity](cap),
		entitiesByName: strmap.New[*Entity](cap),

		attributesByID:   intmap.New[*Attribute](cap),
		attributesByName: strmap.New[*Attribute](cap),

		relTypesByID:   intmap.New[*RelationType](cap),
		relTypesByName: strmap.New[*RelationType](cap),

		valuesByEntity: intmap.New[*ValueList](cap),

		adjBySource: intmap.New[*AdjList](cap),
		adjByTarget: intmap.New[*AdjList](cap),

		entityArena:    newEntityArena(options.EntityArenaBlockSize),
		attributeArena: newAttributeArena(options.AttributeArenaBlockSize),
		valueArena:     newValueArena(options.ValueArenaBlockSize),
		edgeArena:      newEdgeArena(options.EdgeArenaBlockSize),

		nextEntityID:    1,
		nextAttributeID: 1,
		nextValueID:     1,
		nextRelationID:  1,
		nextEdgeID:      1,

		metrics: newMetricsSet(),
	}
	log.WithFields(logrus.Fields{"initial_index_capacity": cap}).Info("eavg: store constructed")
	return s
}

// lockWrite acquires the write lock, timing the wait for the
// write_lock_wait_seconds histogram. Long read-locked traversals starve
// writers; the histogram makes that directly observable.
func (s *Store) lockWrite() {
	start := time.Now()
	s.mu.Lock()
	s.metrics.observeWriteWait(start)
}

// unlockWrite reconciles the index_resizes_total counter against every
// IntMap/StrMap's own grow count, then releases the write lock. Pairing it
// with lockWrite keeps the resize counter live without threading a callback
// through every index's grow path.
func (s *Store) unlockWrite() {
	total := s.entitiesByID.Resizes() + s.entitiesByName.Resizes() +
		s.attributesByID.Resizes() + s.attributesByName.Resizes() +
		s.relTypesByID.Resizes() + s.relTypesByName.Resizes() +
		s.valuesByEntity.Resizes() + s.adjBySource.Resizes() + s.adjByTarget.Resizes()
	if delta := total - s.metrics.lastIndexResizeTotal; delta > 0 {
		s.metrics.indexResizes.Add(float64(delta))
		s.metrics.lastIndexResizeTotal = total
	}
	s.mu.Unlock()
}

// Close releases every arena owned by the store. A Store must not be used
// after Close; doing so produces undefined results (arena-backed slices
// become dangling).
func (s *Store) Close() {
	s.lockWrite()
	defer s.unlockWrite()

	s.entityArena.records.Destroy()
	s.entityArena.names.Destroy()
	s.attributeArena.records.Destroy()
	s.attributeArena.relTypes.Destroy()
	s.attributeArena.names.Destroy()
	s.valueArena.records.Destroy()
	s.valueArena.lists.Destroy()
	s.valueArena.payload.Destroy()
	s.edgeArena.records.Destroy()
	s.edgeArena.adjLists.Destroy()
	s.edgeArena.labels.Destroy()

	s.log.Info("eavg: store closed")
}

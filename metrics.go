// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metricsSet holds the prometheus collectors a Store updates as it
// mutates. Each Store owns its own registry-free collectors (not
// registered against prometheus.DefaultRegisterer automatically) so that
// embedding this library never collides with a host application's metric
// namespace; callers that want these exported wire Registry.MustRegister
// themselves via Store.Collectors.
type metricsSet struct {
	entities     prometheus.Gauge
	attributes   prometheus.Gauge
	relTypes     prometheus.Gauge
	edges        prometheus.Gauge
	values       prometheus.Gauge
	indexResizes prometheus.Counter
	writeWait    prometheus.Histogram

	// lastIndexResizeTotal is the sum of every index's own Resizes() count
	// as of the last reconciliation in Store.unlockWrite, so indexResizes
	// can be a monotonic Counter even though the underlying per-index
	// counts are re-read (not incrementally reported) each time.
	lastIndexResizeTotal int
}

func newMetricsSet() *metricsSet {
	return &metricsSet{
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eavg", Name: "entities", Help: "Number of live entities in the store.",
		}),
		attributes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eavg", Name: "attributes", Help: "Number of live attributes in the store.",
		}),
		relTypes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eavg", Name: "relation_types", Help: "Number of live relation types in the store.",
		}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eavg", Name: "edges", Help: "Number of live edges in the store.",
		}),
		values: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eavg", Name: "values", Help: "Number of live value records in the store.",
		}),
		indexResizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eavg", Name: "index_resizes_total", Help: "Number of IntMap/StrMap grow events observed.",
		}),
		writeWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "eavg", Name: "write_lock_wait_seconds", Help: "Time spent waiting to acquire the store write lock.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Collectors returns every prometheus.Collector this Store maintains, for
// callers that want to register them against their own registry.
func (s *Store) Collectors() []prometheus.Collector {
	m := s.metrics
	return []prometheus.Collector{m.entities, m.attributes, m.relTypes, m.edges, m.values, m.indexResizes, m.writeWait}
}

func (m *metricsSet) observeWriteWait(since time.Time) {
	m.writeWait.Observe(time.Since(since).Seconds())
}

// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// DebugDump renders the catalog and adjacency indexes as formatted tables
// to w, for interactive inspection (e.g. from a REPL or test failure
// output). It is not part of the snapshot format and carries no
// compatibility guarantee across versions.
func (s *Store) DebugDump(w io.Writer) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fmt.Fprintln(w, "entities")
	entTable := tablewriter.NewWriter(w)
	entTable.Header([]string{"id", "type", "name"})
	s.entitiesByID.ForEach(func(_ uint64, e *Entity) bool {
		entTable.Append([]string{fmt.Sprint(e.ID), fmt.Sprint(e.TypeID), e.Name})
		return true
	})
	entTable.Render()

	fmt.Fprintln(w, "attributes")
	attrTable := tablewriter.NewWriter(w)
	attrTable.Header([]string{"id", "name", "dataType"})
	s.attributesByID.ForEach(func(_ uint64, a *Attribute) bool {
		attrTable.Append([]string{fmt.Sprint(a.ID), a.Name, a.DataType.String()})
		return true
	})
	attrTable.Render()

	fmt.Fprintln(w, "relation types")
	relTable := tablewriter.NewWriter(w)
	relTable.Header([]string{"id", "name"})
	s.relTypesByID.ForEach(func(_ uint64, r *RelationType) bool {
		relTable.Append([]string{fmt.Sprint(r.ID), r.Name})
		return true
	})
	relTable.Render()

	fmt.Fprintln(w, "edges (forward index)")
	edgeTable := tablewriter.NewWriter(w)
	edgeTable.Header([]string{"id", "src", "tgt", "relType", "weight", "dir", "label"})
	s.adjBySource.ForEach(func(src uint64, list *AdjList) bool {
		for _, e := range list.Edges {
			edgeTable.Append([]string{
				fmt.Sprint(e.ID), fmt.Sprint(src), fmt.Sprint(e.TargetEntity),
				fmt.Sprint(e.RelationTypeID), fmt.Sprintf("%g", e.Weight),
				e.Direction.String(), e.Label,
			})
		}
		return true
	})
	edgeTable.Render()

	fmt.Fprintf(w, "arena blocks: entity=%d/%d attribute=%d/%d/%d value=%d/%d/%d edge=%d/%d/%d\n",
		s.entityArena.records.Blocks(), s.entityArena.names.Blocks(),
		s.attributeArena.records.Blocks(), s.attributeArena.relTypes.Blocks(), s.attributeArena.names.Blocks(),
		s.valueArena.records.Blocks(), s.valueArena.lists.Blocks(), s.valueArena.payload.Blocks(),
		s.edgeArena.records.Blocks(), s.edgeArena.adjLists.Blocks(), s.edgeArena.labels.Blocks(),
	)
}

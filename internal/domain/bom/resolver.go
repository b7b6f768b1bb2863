// Package bom resolves a material's bill of materials: every material reachable
// through component links, listed once, then grouped by type for traceability.
//
// The graph is whatever operators scanned together, so it may contain dangling
// ids, self links, repeats and cycles. None of these are errors here.
package bom

import (
	"maps"

	"lumbertrace/internal/domain/material"
)

// Index is a read-only id lookup over a material snapshot.
type Index map[string]*material.Material

// NewIndex indexes all by id. When an id repeats, the first record wins.
func NewIndex(all []*material.Material) Index {
	idx := make(Index, len(all))
	for _, m := range all {
		if m == nil {
			continue
		}
		if _, dup := idx[m.ID]; !dup {
			idx[m.ID] = m
		}
	}
	return idx
}

// Resolve returns every material reachable from root through component links,
// depth-first in listed order, each id once at its first position. The root is
// never part of its own result.
func Resolve(root *material.Material, all []*material.Material) []*material.Material {
	return NewIndex(all).Resolve(root)
}

// Resolve is like the package-level Resolve over an existing index.
func (idx Index) Resolve(root *material.Material) []*material.Material {
	if root == nil {
		return []*material.Material{}
	}

	visited := map[string]struct{}{root.ID: {}}
	var found []*material.Material
	idx.walk(root.Components, visited, &found)

	return dedupe(found)
}

// walk visits ids in order. Siblings share visited; each descent gets a copy,
// so a material reached again on another branch is walked again there and
// removed later by dedupe.
func (idx Index) walk(ids []string, visited map[string]struct{}, found *[]*material.Material) {
	for _, componentID := range ids {
		if _, seen := visited[componentID]; seen {
			continue
		}
		visited[componentID] = struct{}{}

		m, ok := idx[componentID]
		if !ok {
			continue
		}

		*found = append(*found, m)
		idx.walk(m.Components, maps.Clone(visited), found)
	}
}

func dedupe(list []*material.Material) []*material.Material {
	seen := make(map[string]struct{}, len(list))
	out := make([]*material.Material, 0, len(list))
	for _, m := range list {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}

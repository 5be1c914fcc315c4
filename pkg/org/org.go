package org

import (
	"errors"
	"maps"
	"slices"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

var (
	// ErrInvalidUnitID is returned by [Graph.AddUnit] when the unit id fails
	// [orgerrors.ValidateUnitID].
	ErrInvalidUnitID = errors.New("invalid unit id")

	// ErrDuplicateUnitID is returned by [Graph.AddUnit] when a unit with the
	// same id was already added.
	ErrDuplicateUnitID = errors.New("duplicate unit id")

	// ErrSelfParent is returned by [Graph.AddUnit] when a unit names itself
	// as its parent.
	ErrSelfParent = errors.New("unit is its own parent")
)

// Well-known attribute keys. Attributes are opaque to the layout engine;
// renderers use these for labels.
const (
	AttrName  = "name"
	AttrTitle = "title"
)

// Unit is one organizational entity (team, role, person).
type Unit struct {
	ID     string            // Unique identifier
	Parent string            // Parent unit id; empty means no parent
	Attrs  map[string]string // Display attributes, never nil after AddUnit
}

// HasParent reports whether the unit names a parent.
func (u Unit) HasParent() bool { return u.Parent != "" }

// Label returns the name attribute if set, otherwise the id.
func (u Unit) Label() string {
	if name := u.Attrs[AttrName]; name != "" {
		return name
	}
	return u.ID
}

// Graph is an organization graph: units keyed by id plus the derived
// parent→children adjacency.
//
// The zero value is not usable; call [New]. Graph is safe for concurrent
// reads once building is finished, but not for concurrent AddUnit calls.
type Graph struct {
	units    map[string]*Unit
	order    []string
	children map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		units:    make(map[string]*Unit),
		children: make(map[string][]string),
	}
}

// AddUnit adds a unit and records it as a child of its parent. The parent
// does not need to exist yet (or at all).
func (g *Graph) AddUnit(u Unit) error {
	if err := orgerrors.ValidateUnitID(u.ID); err != nil {
		return errors.Join(ErrInvalidUnitID, err)
	}
	if _, exists := g.units[u.ID]; exists {
		return ErrDuplicateUnitID
	}
	if u.Parent == u.ID {
		return ErrSelfParent
	}
	if u.Attrs == nil {
		u.Attrs = map[string]string{}
	}
	unit := u
	g.units[u.ID] = &unit
	g.order = append(g.order, u.ID)
	if u.Parent != "" {
		g.children[u.Parent] = append(g.children[u.Parent], u.ID)
	}
	return nil
}

// Unit returns the unit with the given id.
// The returned Attrs map is shared with the graph and must not be modified.
func (g *Graph) Unit(id string) (Unit, bool) {
	u, ok := g.units[id]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

// Has reports whether the graph contains id.
func (g *Graph) Has(id string) bool {
	_, ok := g.units[id]
	return ok
}

// Children returns the ids of units naming id as their parent, in the
// order they were added. The returned slice must not be modified.
func (g *Graph) Children(id string) []string { return g.children[id] }

// Units returns all units in insertion order.
func (g *Graph) Units() []Unit {
	out := make([]Unit, len(g.order))
	for i, id := range g.order {
		out[i] = *g.units[id]
	}
	return out
}

// IDs returns all unit ids in insertion order.
func (g *Graph) IDs() []string { return slices.Clone(g.order) }

// Len returns the number of units.
func (g *Graph) Len() int { return len(g.order) }

// Roots returns units without a parent, or whose parent is not part of
// the graph, in insertion order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.order {
		p := g.units[id].Parent
		if p == "" || !g.Has(p) {
			roots = append(roots, id)
		}
	}
	return roots
}

// DanglingParents returns the sorted set of parent ids referenced by some
// unit but absent from the graph.
func (g *Graph) DanglingParents() []string {
	seen := make(map[string]bool)
	for _, id := range g.order {
		if p := g.units[id].Parent; p != "" && !g.Has(p) {
			seen[p] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// DetectCycles returns every parent cycle in the graph. Each cycle lists
// its members starting from the smallest id, and cycles are ordered by
// that first id. The graph is not modified.
func (g *Graph) DetectCycles() [][]string {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(g.order))
	var cycles [][]string

	for _, start := range g.order {
		if color[start] != white {
			continue
		}
		var path []string
		cur := start
		for cur != "" && g.Has(cur) && color[cur] == white {
			color[cur] = gray
			path = append(path, cur)
			cur = g.units[cur].Parent
		}
		if cur != "" && color[cur] == gray {
			idx := slices.Index(path, cur)
			cycles = append(cycles, rotateToMin(slices.Clone(path[idx:])))
		}
		for _, id := range path {
			color[id] = black
		}
	}

	slices.SortFunc(cycles, func(a, b []string) int {
		switch {
		case a[0] < b[0]:
			return -1
		case a[0] > b[0]:
			return 1
		}
		return 0
	})
	return cycles
}

func rotateToMin(ids []string) []string {
	minIdx := 0
	for i, id := range ids {
		if id < ids[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, 0, len(ids))
	out = append(out, ids[minIdx:]...)
	return append(out, ids[:minIdx]...)
}

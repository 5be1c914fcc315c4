package org

import (
	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// All returns every unit id in insertion order.
func All(g *Graph) []string { return g.IDs() }

// Subtree returns base followed by its descendants in breadth-first order,
// children in insertion order. maxDepth limits how many levels below base
// are included; zero means unlimited. Each unit appears once even if the
// data contains a parent cycle.
func Subtree(g *Graph, base string, maxDepth int) ([]string, error) {
	if !g.Has(base) {
		return nil, orgerrors.MissingUnitData(base)
	}

	type item struct {
		id    string
		depth int
	}
	visited := map[string]bool{base: true}
	out := []string{base}
	queue := []item{{base, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if maxDepth > 0 && cur.depth >= maxDepth {
			continue
		}
		for _, child := range g.Children(cur.id) {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
			queue = append(queue, item{child, cur.depth + 1})
		}
	}
	return out, nil
}

// Predicate selects units for [Filter].
type Predicate func(Unit) bool

// AttrEquals matches units whose attribute key equals value.
func AttrEquals(key, value string) Predicate {
	return func(u Unit) bool { return u.Attrs[key] == value }
}

// Filter returns the ids of units matching pred, in insertion order.
func Filter(g *Graph, pred Predicate) []string {
	var out []string
	for _, u := range g.Units() {
		if pred(u) {
			out = append(out, u.ID)
		}
	}
	return out
}

package layout

import (
	"fmt"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Graph is the read-only view of an organization the engine needs.
// *org.Graph implements it.
type Graph interface {
	Unit(id string) (org.Unit, bool)
	Children(id string) []string
}

// Levels maps unit id to its 1-indexed depth.
type Levels map[string]int

// AssignLevels gives every target a depth.
//
// A non-empty base is the sole root and must be a target. Otherwise a
// target is a root when it has no parent or its parent is not a target.
// Depths are assigned depth-first from each root in order, children in
// graph order; the first assignment wins. Targets left unreached are
// placed at depth 1.
//
// It fails with MISSING_UNIT_DATA if a target is not in g.
func AssignLevels(targets []string, g Graph, base string, diag Diagnostics) (Levels, error) {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	targets = uniqueTargets(targets)

	inTargets := make(map[string]bool, len(targets))
	for _, id := range targets {
		if _, ok := g.Unit(id); !ok {
			return nil, orgerrors.MissingUnitData(id)
		}
		inTargets[id] = true
	}

	levels := make(Levels, len(targets))
	if len(targets) == 0 {
		return levels, nil
	}

	roots, err := selectRoots(targets, inTargets, g, base, diag)
	if err != nil {
		return nil, err
	}

	type frame struct {
		id    string
		depth int
	}
	for _, root := range roots {
		if _, done := levels[root]; done {
			continue
		}
		stack := []frame{{root, 1}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if _, done := levels[f.id]; done {
				continue
			}
			levels[f.id] = f.depth

			// Reverse push so children pop in graph order.
			children := g.Children(f.id)
			for i := len(children) - 1; i >= 0; i-- {
				c := children[i]
				if _, done := levels[c]; inTargets[c] && !done {
					stack = append(stack, frame{c, f.depth + 1})
				}
			}
		}
	}

	for _, id := range targets {
		if _, ok := levels[id]; !ok {
			levels[id] = 1
			report(diag, OrphanedLevelAssignment, id, 1, "unreachable from every root")
		}
	}
	return levels, nil
}

func selectRoots(targets []string, inTargets map[string]bool, g Graph, base string, diag Diagnostics) ([]string, error) {
	if base != "" {
		if inTargets[base] {
			return []string{base}, nil
		}
		if _, ok := g.Unit(base); !ok {
			return nil, orgerrors.MissingUnitData(base)
		}
		return nil, orgerrors.New(orgerrors.ErrCodeInvalidInput, "base unit %q is not a target", base)
	}

	var roots []string
	for _, id := range targets {
		u, _ := g.Unit(id)
		switch {
		case u.Parent == "":
			roots = append(roots, id)
		case !inTargets[u.Parent]:
			roots = append(roots, id)
			if _, ok := g.Unit(u.Parent); ok {
				report(diag, ExcludedParentRoot, id, 1, fmt.Sprintf("parent %q is not a target", u.Parent))
			} else {
				report(diag, DanglingParent, id, 1, fmt.Sprintf("parent %q is not in the graph", u.Parent))
			}
		}
	}

	if len(roots) == 0 {
		report(diag, DegenerateRootSet, targets[0], 1, "no root among targets, using first target")
		roots = []string{targets[0]}
	}
	return roots, nil
}

// uniqueTargets drops repeated ids, keeping first occurrences.
func uniqueTargets(targets []string) []string {
	seen := make(map[string]bool, len(targets))
	out := make([]string, 0, len(targets))
	for _, id := range targets {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

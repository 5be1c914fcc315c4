// Package layout computes hierarchy layouts for organization charts.
//
// # Overview
//
// The engine turns a read-only organization graph and a target set of unit
// ids into a purely geometric result: one [Node] per unit with an (x, y)
// position and a depth, plus parent→child [Edge] records. It never renders,
// exports, or persists anything; renderers in pkg/render consume the result.
//
// # Pipeline
//
// A layout call runs five stages, each consuming only the previous stage's
// output plus the read-only graph:
//
//  1. [AssignLevels]: 1-indexed depth per target unit, by explicit-stack
//     depth-first traversal from the chosen roots
//  2. [GroupByLevel]: partition of the targets by depth
//  3. [ComputeXPositions]: X coordinates, bottom-up. The deepest row is laid
//     out bucket by bucket (siblings grouped by parent, sorted by id);
//     every shallower row centers parents over their positioned children
//     and slots childless units into free space.
//  4. [GenerateNodes] and [GenerateConnections]: final coordinates with
//     uniform row spacing, and edges between rendered parents and children
//  5. [ComputeBounds]: canvas extent padded by the margin
//
// [Calculate] runs all stages:
//
//	res, err := layout.Calculate(g, org.All(g),
//	    layout.WithConfig(layout.DefaultConfig()),
//	    layout.WithDiagnostics(layout.LogDiagnostics(logger)),
//	)
//	bounds := res.Bounds()
//
// # Roots
//
// With a base unit, the base is the sole root. Otherwise a unit is a root
// when it has no parent or its parent is not a target; such units are
// laid out as visual roots and get no incoming edge. If no root exists the
// first target becomes the root, and targets unreachable from any root are
// placed at depth 1. Both fallbacks are reported through [Diagnostics] and
// never fail the call.
//
// # Determinism
//
// Identical inputs and configuration always yield identical node and edge
// sequences. Leaf buckets and their members are ordered by id, and every
// later tie-break is a stable sort over input order.
//
// # Concurrency
//
// Every call allocates fresh maps and never mutates the graph, so
// concurrent calls sharing one graph are safe as long as nobody modifies
// the graph meanwhile.
package layout

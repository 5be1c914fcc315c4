// Package pkg provides the core libraries for orgchart, a layout engine for
// organizational hierarchies.
//
// # Overview
//
// Orgchart turns a set of units (teams, roles, people) with parent
// references into a level-aligned chart: every unit sits on the row of its
// depth below a root, and parents are centered over their children. The
// pkg directory is organized into these areas:
//
//  1. [org] - Unit records, the organization graph, and data import
//  2. [layout] - The layout engine (levels, positions, boxes, connections)
//  3. [graph] - The serialized layout exchanged between stages
//  4. [render] - Output formats for a computed layout
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	CSV / TSV / YAML / JSON file, or MongoDB collection
//	         ↓
//	    [org] package (units + parent→children adjacency)
//	         ↓
//	    [layout] package (level assignment + horizontal positioning)
//	         ↓
//	    [graph] package (layout JSON)
//	         ↓
//	    [render] packages (SVG, DOT, PNG, PDF)
//
// # Quick Start
//
//	g, _ := org.Import("company.csv")
//	targets, _ := org.Subtree(g, "VP-Eng", 0)
//
//	res, _ := layout.Calculate(g, targets, layout.WithBase("VP-Eng"))
//	l := graph.FromResult(res, g)
//
//	out := svg.RenderSVG(l, svg.WithTitles())
//
// # Main Packages
//
// [org] - Units keyed by id with display attributes. Importers for CSV and
// TSV (id and parent columns, every other column an attribute), YAML, the
// JSON document format, and MongoDB collections. Target selection helpers
// pick a subtree or filter by attribute.
//
// [layout] - The engine. Levels come from a breadth-first walk from the
// selected roots; leaves are packed left to right in sibling buckets and
// every parent is centered over its children. Recoverable anomalies are
// reported through [layout.Diagnostics] and never change the result.
//
// [graph] - The wire format of a computed chart: boxes, parent edges,
// bounds, configuration and diagnostics.
//
// [render/svg] - Box-and-connector SVG with simple and rounded styles.
//
// [render/nodelink] - Graphviz DOT with pinned positions, rendered through
// the embedded Graphviz library.
//
// [render] - SVG to PDF and PNG conversion via rsvg-convert.
//
// [pipeline] - The load → layout → render pipeline shared by the CLI and the
// HTTP API, with layout and artifact caching.
//
// [cache] - File, Redis and null caches plus the key scheme for layouts,
// artifacts and stored layouts.
//
// [observability] - Hook registry for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
//	go test ./...
//	ORGCHART_TEST_REDIS=localhost:6379 go test ./pkg/cache/...
//
// [org]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/org
// [layout]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/layout
// [layout.Diagnostics]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/layout#Diagnostics
// [graph]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/orgchart/pkg/errors
package pkg

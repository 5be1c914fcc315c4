// Package nodelink renders org-chart layouts through Graphviz.
//
// # Overview
//
// [ToDOT] writes a layout as Graphviz DOT source. Each depth becomes a
// rank=same group so Graphviz keeps the engine's rows, and every node
// carries its engine position as a pinned pos attribute, so the source
// can be fed either to dot (which re-arranges within rows) or to
// neato -n (which keeps the engine's coordinates exactly).
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: node labels include the title and remaining attributes
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink

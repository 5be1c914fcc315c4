// Package graph provides the serialization format for computed org-chart
// layouts.
//
// This package defines the canonical wire format used for layout JSON files,
// API responses, and cache entries. It sits at the boundary between the
// layout engine and everything that consumes its output:
//
//   - pkg/layout.Result: engine output (ids, coordinates, depths)
//   - [Layout]: serialized form with labels, box sizes, and the config used
//   - pkg/render/...: renderers reading [Layout]
//
// Use [FromResult] to convert engine output, and the Marshal/Unmarshal and
// Read/Write helpers to move layouts across process boundaries.
//
// # Format
//
//	{
//	  "nodes": [
//	    {"id": "CEO", "label": "Ada", "x": 157.5, "y": 20, "width": 100, "height": 50, "depth": 1},
//	    {"id": "VP-Sales", "parent": "CEO", "x": 45, "y": 120, "width": 100, "height": 50, "depth": 2}
//	  ],
//	  "edges": [{"from": "CEO", "to": "VP-Sales"}],
//	  "levels": {"1": ["CEO"], "2": ["VP-Sales"]},
//	  "bounds": {"max_x": 390, "max_y": 290},
//	  "config": {"margin_px": 20, ...},
//	  "style": "simple"
//	}
//
// Node coordinates are the top-left corner of the box. Nodes keep the
// engine's order (row by row), so serialized layouts compare byte for byte.
//
// # Styles
//
//	graph.StyleSimple   // "simple"
//	graph.StyleRounded  // "rounded"
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph

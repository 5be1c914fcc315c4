// Package render provides output formats for computed org-chart layouts.
//
// # Overview
//
// Renderers consume a [graph.Layout] and never change positions; the layout
// engine in pkg/layout is the only place coordinates are decided. This
// package provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Box-and-connector charts (in [svg] subpackage)
//   - Graphviz output (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	out := svg.RenderSVG(l, svg.WithStyle(svg.Rounded{}))
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0)  // 2x scale
//
// When rsvg-convert is not installed the functions fail with an
// UNSUPPORTED error instead of producing partial output.
//
// [graph.Layout]: github.com/matzehuels/orgchart/pkg/graph.Layout
// [svg]: github.com/matzehuels/orgchart/pkg/render/svg
// [nodelink]: github.com/matzehuels/orgchart/pkg/render/nodelink
package render

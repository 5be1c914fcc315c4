// Package svg renders org-chart layouts as SVG box diagrams.
//
// Every node becomes a box at its layout position with a centered label,
// and every edge becomes an orthogonal "elbow" connector: down from the
// parent's bottom center, across at the midpoint between the rows, and
// down into the child's top center. Siblings therefore share a single
// horizontal bus.
//
//	out := svg.RenderSVG(l, svg.WithStyle(svg.Rounded{}), svg.WithTitles())
//
// Output is deterministic: the same layout and options always produce the
// same bytes.
//
// # Styles
//
// A [Style] draws boxes, connectors and labels. [Simple] draws plain
// rectangles; [Rounded] draws rounded, depth-tinted cards with a soft
// shadow. [StyleByName] maps the wire-format style names to a Style.
package svg

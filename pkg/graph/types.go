package graph

import (
	"slices"

	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Visual styles for rendering.
const (
	StyleSimple  = "simple"
	StyleRounded = "rounded"
)

// ValidStyle reports whether s names a known style.
func ValidStyle(s string) bool {
	return s == StyleSimple || s == StyleRounded
}

// Layout is the serialized form of a computed org chart.
type Layout struct {
	Nodes  []Node           `json:"nodes" bson:"nodes"`
	Edges  []Edge           `json:"edges" bson:"edges"`
	Levels map[int][]string `json:"levels,omitempty" bson:"levels,omitempty"`
	Bounds layout.Bounds    `json:"bounds" bson:"bounds"`
	Config layout.Config    `json:"config" bson:"config"`
	Base   string           `json:"base,omitempty" bson:"base,omitempty"`
	Style  string           `json:"style,omitempty" bson:"style,omitempty"`

	// Diagnostics holds fallback and root events reported while computing
	// the layout.
	Diagnostics []layout.Event `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`
}

// Node is a positioned unit box.
type Node struct {
	ID     string            `json:"id" bson:"id"`
	Label  string            `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Title  string            `json:"title,omitempty" bson:"title,omitempty"`
	Parent string            `json:"parent,omitempty" bson:"parent,omitempty"` // Set only when the edge to the parent is drawn
	X      float64           `json:"x" bson:"x"`
	Y      float64           `json:"y" bson:"y"`
	Width  float64           `json:"width" bson:"width"`
	Height float64           `json:"height" bson:"height"`
	Depth  int               `json:"depth" bson:"depth"`
	Attrs  map[string]string `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// CenterX returns the horizontal center of the box.
func (n Node) CenterX() float64 { return n.X + n.Width/2 }

// Edge connects a parent node to a child node by id.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// FromResult converts engine output to the wire format. Labels and
// attributes come from g; units g does not know keep only their id.
func FromResult(res *layout.Result, g layout.Graph) Layout {
	cfg := res.Config()
	l := Layout{
		Nodes:  make([]Node, 0, len(res.Nodes)),
		Edges:  make([]Edge, 0, len(res.Connections)),
		Levels: make(map[int][]string),
		Bounds: res.Bounds(),
		Config: cfg,
		Style:  StyleSimple,
	}

	parents := make(map[string]string, len(res.Connections))
	for _, e := range res.Connections {
		l.Edges = append(l.Edges, Edge{From: e.From.ID, To: e.To.ID})
		parents[e.To.ID] = e.From.ID
	}

	for _, n := range res.Nodes {
		node := Node{
			ID:     n.ID,
			Parent: parents[n.ID],
			X:      n.X,
			Y:      n.Y,
			Width:  cfg.BoxWidth,
			Height: cfg.BoxHeight,
			Depth:  n.Depth,
		}
		if u, ok := g.Unit(n.ID); ok {
			if label := u.Label(); label != u.ID {
				node.Label = label
			}
			node.Title = u.Attrs[org.AttrTitle]
			if len(u.Attrs) > 0 {
				node.Attrs = make(map[string]string, len(u.Attrs))
				for k, v := range u.Attrs {
					node.Attrs[k] = v
				}
			}
		}
		l.Nodes = append(l.Nodes, node)
		l.Levels[n.Depth] = append(l.Levels[n.Depth], n.ID)
	}
	return l
}

// Depths returns the depths present in the layout in ascending order.
func (l Layout) Depths() []int {
	seen := make(map[int]bool)
	var out []int
	for _, n := range l.Nodes {
		if !seen[n.Depth] {
			seen[n.Depth] = true
			out = append(out, n.Depth)
		}
	}
	slices.Sort(out)
	return out
}

// Extent returns the smallest rectangle containing every box and the
// bounds, padded by the configured margin on the left and top. Boxes of
// the leftmost leaves can start left of zero, so renderers use this for
// the view box instead of assuming an origin of (0, 0).
func (l Layout) Extent() (minX, minY, maxX, maxY float64) {
	if len(l.Nodes) == 0 {
		return 0, 0, l.Bounds.MaxX, l.Bounds.MaxY
	}
	minX, minY = l.Nodes[0].X, l.Nodes[0].Y
	maxX, maxY = l.Bounds.MaxX, l.Bounds.MaxY
	for _, n := range l.Nodes {
		minX = min(minX, n.X)
		minY = min(minY, n.Y)
		maxX = max(maxX, n.X+n.Width)
		maxY = max(maxY, n.Y+n.Height)
	}
	minX = min(minX-l.Config.Margin, 0)
	minY = min(minY-l.Config.Margin, 0)
	return minX, minY, maxX, maxY
}

// NodeByID returns the node with the given id.
func (l Layout) NodeByID(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/orgchart/pkg/graph"
)

// Option configures [RenderSVG].
type Option func(*renderer)

type renderer struct {
	style      Style
	titles     bool
	background string
}

// WithStyle sets the drawing style. Defaults to [Simple].
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithTitles adds each unit's title attribute as a second line.
func WithTitles() Option { return func(r *renderer) { r.titles = true } }

// WithBackground fills the canvas with color (any SVG color value).
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// RenderSVG draws l. Connectors are drawn first so boxes cover their ends.
func RenderSVG(l graph.Layout, opts ...Option) []byte {
	r := renderer{style: Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	minX, minY, maxX, maxY := l.Extent()
	width, height := maxX-minX, maxY-minY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, width, height, width, height)
	r.style.RenderDefs(&buf)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			minX, minY, width, height, EscapeXML(r.background))
	}

	boxes := buildBoxes(l)
	for _, c := range buildConnectors(l, boxes) {
		r.style.RenderConnector(&buf, c)
	}
	for _, b := range boxes {
		r.style.RenderBox(&buf, b)
	}
	for _, b := range boxes {
		r.style.RenderText(&buf, b, r.titles)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBoxes(l graph.Layout) []Box {
	boxes := make([]Box, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		w, h := n.Width, n.Height
		if w <= 0 {
			w = l.Config.BoxWidth
		}
		if h <= 0 {
			h = l.Config.BoxHeight
		}
		boxes = append(boxes, Box{
			ID:    n.ID,
			Label: n.DisplayLabel(),
			Title: n.Title,
			X:     n.X,
			Y:     n.Y,
			W:     w,
			H:     h,
			CX:    n.X + w/2,
			CY:    n.Y + h/2,
			Depth: n.Depth,
		})
	}
	return boxes
}

func buildConnectors(l graph.Layout, boxes []Box) []Connector {
	byID := make(map[string]Box, len(boxes))
	for _, b := range boxes {
		byID[b.ID] = b
	}

	conns := make([]Connector, 0, len(l.Edges))
	for _, e := range l.Edges {
		from, okFrom := byID[e.From]
		to, okTo := byID[e.To]
		if !okFrom || !okTo {
			continue
		}
		y1, y2 := from.Y+from.H, to.Y
		conns = append(conns, Connector{
			FromID: e.From,
			ToID:   e.To,
			X1:     from.CX,
			Y1:     y1,
			X2:     to.CX,
			Y2:     y2,
			MidY:   y1 + (y2-y1)/2,
		})
	}
	return conns
}

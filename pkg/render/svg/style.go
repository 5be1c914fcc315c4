package svg

import (
	"bytes"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/graph"
)

// Style defines the visual appearance of a chart.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, markers).
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the shape for a single unit.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderConnector writes the line between a parent and a child.
	RenderConnector(buf *bytes.Buffer, c Connector)
	// RenderText writes a unit's label (and title, when enabled).
	RenderText(buf *bytes.Buffer, b Box, withTitle bool)
}

// Box contains the data needed to draw one unit.
type Box struct {
	ID         string  // Unit identifier
	Label      string  // Display text
	Title      string  // Secondary line, may be empty
	X, Y, W, H float64 // Position and dimensions
	CX, CY     float64 // Center coordinates
	Depth      int
}

// Connector is an elbow from a parent's bottom center to a child's top
// center, turning at MidY.
type Connector struct {
	FromID, ToID   string
	X1, Y1, X2, Y2 float64
	MidY           float64
}

// StyleByName returns the Style for a wire-format style name. An empty
// name selects [Simple].
func StyleByName(name string) (Style, error) {
	switch name {
	case "", graph.StyleSimple:
		return Simple{}, nil
	case graph.StyleRounded:
		return Rounded{}, nil
	default:
		return nil, orgerrors.New(orgerrors.ErrCodeInvalidStyle, "unknown style %q (want %s or %s)", name, graph.StyleSimple, graph.StyleRounded)
	}
}

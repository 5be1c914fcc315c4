package svg

import (
	"bytes"
	"fmt"
)

// Simple draws black-outlined rectangles and straight elbow connectors.
type Simple struct{}

func (Simple) RenderDefs(*bytes.Buffer) {}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <rect id="unit-%s" class="unit" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#ffffff" stroke="#333333" stroke-width="1.5"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H)
}

func (Simple) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf, `  <path class="connector" d="%s" fill="none" stroke="#333333" stroke-width="1.5"/>`+"\n", elbowPath(c))
}

func (Simple) RenderText(buf *bytes.Buffer, b Box, withTitle bool) {
	renderLabel(buf, b, withTitle, "#111111", "#555555", "sans-serif")
}

// Rounded draws rounded cards tinted by depth, with a drop shadow.
type Rounded struct{}

// depthFills cycles per depth so adjacent rows differ.
var depthFills = []string{"#e8f0fe", "#e6f4ea", "#fef7e0", "#fce8e6", "#f3e8fd"}

const roundedRadius = 8.0

func (Rounded) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <filter id="shadow" x="-10%" y="-10%" width="130%" height="140%">
      <feDropShadow dx="0" dy="2" stdDeviation="2" flood-color="#000000" flood-opacity="0.18"/>
    </filter>
  </defs>
`)
}

func (Rounded) RenderBox(buf *bytes.Buffer, b Box) {
	fill := depthFills[max(b.Depth-1, 0)%len(depthFills)]
	fmt.Fprintf(buf, `  <rect id="unit-%s" class="unit" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.0f" ry="%.0f" fill="%s" stroke="#5f6368" stroke-width="1" filter="url(#shadow)"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H, roundedRadius, roundedRadius, fill)
}

func (Rounded) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf, `  <path class="connector" d="%s" fill="none" stroke="#80868b" stroke-width="1.5" stroke-linejoin="round"/>`+"\n", elbowPath(c))
}

func (Rounded) RenderText(buf *bytes.Buffer, b Box, withTitle bool) {
	renderLabel(buf, b, withTitle, "#202124", "#5f6368", "Helvetica, Arial, sans-serif")
}

func elbowPath(c Connector) string {
	return fmt.Sprintf("M %.2f %.2f V %.2f H %.2f V %.2f", c.X1, c.Y1, c.MidY, c.X2, c.Y2)
}

func renderLabel(buf *bytes.Buffer, b Box, withTitle bool, color, titleColor, family string) {
	size := FontSize(b)
	if !withTitle || b.Title == "" {
		fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
			b.CX, b.CY, family, size, color, EscapeXML(TruncateLabel(b.Label, b.W, size)))
		return
	}

	titleSize := max(fontSizeMin, size*titleSizeRatio)
	fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
		b.CX, b.CY-b.H*0.15, family, size, color, EscapeXML(TruncateLabel(b.Label, b.W, size)))
	fmt.Fprintf(buf, `  <text class="title" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%.1f" fill="%s">%s</text>`+"\n",
		b.CX, b.CY+b.H*0.2, family, titleSize, titleColor, EscapeXML(TruncateLabel(b.Title, b.W, titleSize)))
}

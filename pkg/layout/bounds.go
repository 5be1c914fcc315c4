package layout

// Bounds is the canvas extent: the smallest rectangle containing every box,
// padded by the margin on the right and bottom.
type Bounds struct {
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// ComputeBounds returns the extent of nodes at full box size, or the zero
// Bounds for no nodes.
func ComputeBounds(nodes []Node, cfg Config) Bounds {
	if len(nodes) == 0 {
		return Bounds{}
	}
	maxX := nodes[0].X + cfg.BoxWidth
	maxY := nodes[0].Y + cfg.BoxHeight
	for _, n := range nodes[1:] {
		maxX = max(maxX, n.X+cfg.BoxWidth)
		maxY = max(maxY, n.Y+cfg.BoxHeight)
	}
	return Bounds{MaxX: maxX + cfg.Margin, MaxY: maxY + cfg.Margin}
}

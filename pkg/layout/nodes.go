package layout

// Node is a positioned unit. X and Y are the top-left corner of its box.
type Node struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Depth int     `json:"depth"`
}

// Edge connects a parent node to a child node.
type Edge struct {
	From Node `json:"from"`
	To   Node `json:"to"`
}

// GenerateNodes converts positions to boxes. Rows are the non-empty depths
// re-indexed from zero, so gaps in depth numbering leave no blank rows.
// Units without a position are omitted.
func GenerateNodes(groups LevelGroups, positions Positions, cfg Config) []Node {
	var nodes []Node
	for row, depth := range groups.Depths() {
		y := float64(row)*cfg.VSpacing + cfg.Margin
		for _, id := range groups[depth] {
			x, ok := positions[id]
			if !ok {
				continue
			}
			nodes = append(nodes, Node{ID: id, X: x - cfg.BoxWidth/2, Y: y, Depth: depth})
		}
	}
	return nodes
}

// GenerateConnections emits an edge for every node whose parent is a
// target with a node one depth above it. Units whose parent was left out
// of targets get no edge.
func GenerateConnections(nodes []Node, targets []string, g Graph) []Edge {
	inTargets := make(map[string]bool, len(targets))
	for _, id := range targets {
		inTargets[id] = true
	}
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var edges []Edge
	for _, n := range nodes {
		u, ok := g.Unit(n.ID)
		if !ok || u.Parent == "" || !inTargets[u.Parent] {
			continue
		}
		p, ok := byID[u.Parent]
		// Fallback roots and cycles can put a parent on any row.
		if !ok || p.Depth != n.Depth-1 {
			continue
		}
		edges = append(edges, Edge{From: p, To: n})
	}
	return edges
}

package graph_test

import (
	"fmt"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
)

func ExampleFromResult() {
	g := org.New()
	_ = g.AddUnit(org.Unit{ID: "CEO", Attrs: map[string]string{"name": "Ada"}})
	_ = g.AddUnit(org.Unit{ID: "CTO", Parent: "CEO"})

	res, _ := layout.Calculate(g, org.All(g))
	l := graph.FromResult(res, g)

	for _, n := range l.Nodes {
		fmt.Printf("%s (%s) depth %d at %g,%g\n", n.ID, n.DisplayLabel(), n.Depth, n.X, n.Y)
	}
	fmt.Println("edges:", l.Edges)
	// Output:
	// CEO (Ada) depth 1 at -40,20
	// CTO (CTO) depth 2 at -40,120
	// edges: [{CEO CTO}]
}

func ExampleUnmarshalLayout() {
	data := []byte(`{
		"nodes": [
			{"id": "CEO", "x": 0, "y": 20, "width": 120, "height": 60, "depth": 1},
			{"id": "CTO", "parent": "CEO", "x": 0, "y": 120, "width": 120, "height": 60, "depth": 2}
		],
		"edges": [{"from": "CEO", "to": "CTO"}]
	}`)

	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("nodes:", len(l.Nodes), "style:", l.Style)
	// Output: nodes: 2 style: simple
}

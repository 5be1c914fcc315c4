package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/layout"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		Nodes: []graph.Node{
			{ID: "CEO", Label: "Ada", Title: "Chief Executive", X: 0, Y: 20, Width: 144, Height: 72, Depth: 1,
				Attrs: map[string]string{"name": "Ada", "title": "Chief Executive", "office": "London"}},
			{ID: "CTO", Parent: "CEO", X: 0, Y: 120, Width: 144, Height: 72, Depth: 2},
			{ID: "CFO", Parent: "CEO", X: 150, Y: 120, Width: 144, Height: 72, Depth: 2},
		},
		Edges:  []graph.Edge{{From: "CEO", To: "CTO"}, {From: "CEO", To: "CFO"}},
		Bounds: layout.Bounds{MaxX: 314, MaxY: 212},
		Config: layout.Config{Margin: 20},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{})

	for _, want := range []string{
		"digraph G",
		`"CEO" [label="Ada", pos="72,156!", width=2, height=1];`,
		`"CFO" [label="CFO", pos="222,56!"`,
		`{ rank=same; "CEO"; }`,
		`{ rank=same; "CTO"; "CFO"; }`,
		`"CEO" -> "CTO";`,
		`"CEO" -> "CFO";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "London") {
		t.Error("ToDOT() without Detailed includes attributes")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{Detailed: true})

	if !strings.Contains(dot, `label="Ada\nChief Executive\noffice: London"`) {
		t.Errorf("ToDOT() detailed label wrong:\n%s", dot)
	}
}

func TestToDOT_Quoting(t *testing.T) {
	l := graph.Layout{Nodes: []graph.Node{{ID: `say "hi"`, Depth: 1}}}
	dot := ToDOT(l, Options{})
	if !strings.Contains(dot, `"say \"hi\""`) {
		t.Errorf("ToDOT() did not quote id:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleLayout(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0`) {
		t.Errorf("RenderSVG() root not normalized: %.200s", out)
	}
	if !strings.Contains(out, "Ada") {
		t.Error("RenderSVG() output missing label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() changed svg without viewBox")
	}
}

package layout

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-test/deep"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
)

func newGraph(t testing.TB, units ...org.Unit) *org.Graph {
	t.Helper()
	g := org.New()
	for _, u := range units {
		if err := g.AddUnit(u); err != nil {
			t.Fatalf("AddUnit(%q): %v", u.ID, err)
		}
	}
	return g
}

func companyGraph(t testing.TB) *org.Graph {
	return newGraph(t,
		org.Unit{ID: "CEO"},
		org.Unit{ID: "VP-Sales", Parent: "CEO"},
		org.Unit{ID: "VP-Eng", Parent: "CEO"},
		org.Unit{ID: "Rep1", Parent: "VP-Sales"},
		org.Unit{ID: "Rep2", Parent: "VP-Sales"},
	)
}

var scenarioConfig = Config{Margin: 20, HSpacing: 150, VSpacing: 100, BoxWidth: 100, BoxHeight: 50}

func TestCalculateScenario(t *testing.T) {
	g := companyGraph(t)
	res, err := Calculate(g, org.All(g), WithConfig(scenarioConfig))
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	ceo := Node{ID: "CEO", X: 157.5, Y: 20, Depth: 1}
	sales := Node{ID: "VP-Sales", X: 45, Y: 120, Depth: 2}
	eng := Node{ID: "VP-Eng", X: 270, Y: 120, Depth: 2}
	rep1 := Node{ID: "Rep1", X: -30, Y: 220, Depth: 3}
	rep2 := Node{ID: "Rep2", X: 120, Y: 220, Depth: 3}

	if diff := deep.Equal(res.Nodes, []Node{ceo, sales, eng, rep1, rep2}); diff != nil {
		t.Errorf("Nodes: %v", diff)
	}
	wantEdges := []Edge{
		{From: ceo, To: sales},
		{From: ceo, To: eng},
		{From: sales, To: rep1},
		{From: sales, To: rep2},
	}
	if diff := deep.Equal(res.Connections, wantEdges); diff != nil {
		t.Errorf("Connections: %v", diff)
	}
	if diff := deep.Equal(res.Levels, Levels{"CEO": 1, "VP-Sales": 2, "VP-Eng": 2, "Rep1": 3, "Rep2": 3}); diff != nil {
		t.Errorf("Levels: %v", diff)
	}
	if got, want := res.Bounds(), (Bounds{MaxX: 390, MaxY: 290}); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestCalculateEmpty(t *testing.T) {
	res, err := Calculate(companyGraph(t), nil)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if len(res.Nodes) != 0 || len(res.Connections) != 0 {
		t.Errorf("Calculate(nil) = %d nodes, %d edges, want none", len(res.Nodes), len(res.Connections))
	}
	if res.Bounds() != (Bounds{}) {
		t.Errorf("Bounds() = %+v, want zero", res.Bounds())
	}
}

func TestCalculateErrors(t *testing.T) {
	g := companyGraph(t)

	tests := []struct {
		name    string
		targets []string
		opts    []Option
		want    orgerrors.Code
	}{
		{"missing target", []string{"CEO", "CFO"}, nil, orgerrors.ErrCodeMissingUnitData},
		{"missing base", []string{"CEO"}, []Option{WithBase("CFO")}, orgerrors.ErrCodeMissingUnitData},
		{"base not targeted", []string{"VP-Sales"}, []Option{WithBase("CEO")}, orgerrors.ErrCodeInvalidInput},
		{"bad config", []string{"CEO"}, []Option{WithConfig(Config{HSpacing: -1})}, orgerrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(g, tt.targets, tt.opts...)
			if !orgerrors.Is(err, tt.want) {
				t.Errorf("Calculate() error = %v, want code %s", err, tt.want)
			}
			if res != nil {
				t.Errorf("Calculate() result = %+v, want nil on error", res)
			}
		})
	}
}

func TestExcludedParentBecomesRoot(t *testing.T) {
	g := newGraph(t,
		org.Unit{ID: "A"},
		org.Unit{ID: "B", Parent: "A"},
		org.Unit{ID: "C", Parent: "B"},
	)
	rec := &Recorder{}
	res, err := Calculate(g, []string{"B", "C"}, WithDiagnostics(rec))
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	if res.Levels["B"] != 1 || res.Levels["C"] != 2 {
		t.Errorf("Levels = %v, want B=1 C=2", res.Levels)
	}
	if _, ok := res.Levels["A"]; ok {
		t.Error("excluded unit A has a level")
	}
	for _, e := range res.Connections {
		if e.From.ID == "A" || e.To.ID == "A" {
			t.Errorf("edge %s→%s references excluded unit", e.From.ID, e.To.ID)
		}
	}
	if len(res.Connections) != 1 {
		t.Errorf("Connections = %d, want 1", len(res.Connections))
	}
	if rec.Count(ExcludedParentRoot) != 1 {
		t.Errorf("ExcludedParentRoot events = %d, want 1", rec.Count(ExcludedParentRoot))
	}
}

func TestDanglingParentIsRoot(t *testing.T) {
	g := newGraph(t, org.Unit{ID: "X", Parent: "ghost"})
	rec := &Recorder{}
	res, err := Calculate(g, []string{"X"}, WithDiagnostics(rec))
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if res.Levels["X"] != 1 {
		t.Errorf("Levels[X] = %d, want 1", res.Levels["X"])
	}
	if got := rec.Events(); len(got) != 1 || got[0].Kind != DanglingParent {
		t.Errorf("events = %+v, want one DanglingParent", got)
	}

	if _, err := Calculate(g, []string{"ghost"}); !orgerrors.Is(err, orgerrors.ErrCodeMissingUnitData) {
		t.Errorf("Calculate(ghost) error = %v, want MISSING_UNIT_DATA", err)
	}
}

func TestBaseIsSoleRoot(t *testing.T) {
	g := companyGraph(t)
	targets := []string{"VP-Sales", "Rep1", "Rep2"}
	res, err := Calculate(g, targets, WithBase("VP-Sales"), WithConfig(scenarioConfig))
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	want := Levels{"VP-Sales": 1, "Rep1": 2, "Rep2": 2}
	if diff := deep.Equal(res.Levels, want); diff != nil {
		t.Error(diff)
	}
	if len(res.Connections) != 2 {
		t.Errorf("Connections = %d, want 2", len(res.Connections))
	}
}

func TestOrphanFallback(t *testing.T) {
	// a and b form a parent cycle; only c is a well-formed root.
	g := newGraph(t,
		org.Unit{ID: "a", Parent: "b"},
		org.Unit{ID: "b", Parent: "a"},
		org.Unit{ID: "c"},
	)
	rec := &Recorder{}
	levels, err := AssignLevels([]string{"c", "a", "b"}, g, "", rec)
	if err != nil {
		t.Fatalf("AssignLevels() error: %v", err)
	}
	if diff := deep.Equal(levels, Levels{"a": 1, "b": 1, "c": 1}); diff != nil {
		t.Error(diff)
	}
	if rec.Count(OrphanedLevelAssignment) != 2 {
		t.Errorf("OrphanedLevelAssignment events = %d, want 2", rec.Count(OrphanedLevelAssignment))
	}
}

func TestDegenerateRootSet(t *testing.T) {
	g := newGraph(t,
		org.Unit{ID: "a", Parent: "b"},
		org.Unit{ID: "b", Parent: "a"},
	)
	rec := &Recorder{}
	res, err := Calculate(g, []string{"a", "b"}, WithDiagnostics(rec))
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if diff := deep.Equal(res.Levels, Levels{"a": 1, "b": 2}); diff != nil {
		t.Error(diff)
	}
	if rec.Count(DegenerateRootSet) != 1 {
		t.Errorf("DegenerateRootSet events = %d, want 1", rec.Count(DegenerateRootSet))
	}
	// The cycle must not produce a back edge.
	if len(res.Connections) != 1 || res.Connections[0].From.ID != "a" {
		t.Errorf("Connections = %+v, want only a→b", res.Connections)
	}
}

func TestBaseLeavesAncestorsAtOrphanDepth(t *testing.T) {
	// With a base below the top, the base's descendants follow it and the
	// unreached ancestor falls back to depth 1.
	g := newGraph(t,
		org.Unit{ID: "root"},
		org.Unit{ID: "mid", Parent: "root"},
		org.Unit{ID: "leaf", Parent: "mid"},
	)
	levels, err := AssignLevels([]string{"leaf", "mid", "root"}, g, "mid", nil)
	if err != nil {
		t.Fatalf("AssignLevels() error: %v", err)
	}
	if diff := deep.Equal(levels, Levels{"mid": 1, "leaf": 2, "root": 1}); diff != nil {
		t.Error(diff)
	}
}

func TestDuplicateTargets(t *testing.T) {
	g := companyGraph(t)
	res, err := Calculate(g, []string{"CEO", "VP-Eng", "CEO", "VP-Eng"})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if len(res.Nodes) != 2 {
		t.Errorf("Nodes = %d, want 2", len(res.Nodes))
	}
}

func TestDeterminism(t *testing.T) {
	g := wideGraph(t, 4, 3)
	targets := org.All(g)

	first, err := Calculate(g, targets)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Calculate(g, targets)
		if err != nil {
			t.Fatalf("Calculate() error: %v", err)
		}
		if diff := deep.Equal(again.Nodes, first.Nodes); diff != nil {
			t.Fatalf("run %d nodes differ: %v", i, diff)
		}
		if diff := deep.Equal(again.Connections, first.Connections); diff != nil {
			t.Fatalf("run %d edges differ: %v", i, diff)
		}
	}
}

func TestLayoutProperties(t *testing.T) {
	type shape struct {
		name  string
		graph func(testing.TB) *org.Graph
		cfg   Config
	}
	var shapes []shape
	for _, s := range []struct{ fanout, depth int }{{1, 5}, {2, 4}, {3, 3}, {5, 2}} {
		shapes = append(shapes, shape{
			name:  fmt.Sprintf("fanout%d_depth%d", s.fanout, s.depth),
			graph: func(t testing.TB) *org.Graph { return wideGraph(t, s.fanout, s.depth) },
			cfg:   DefaultConfig(),
		})
	}
	shapes = append(shapes,
		shape{"uneven_subtrees", unevenGraph, scenarioConfig},
		shape{"uneven_subtrees_default", unevenGraph, DefaultConfig()},
		shape{"mixed_childless", func(t testing.TB) *org.Graph {
			return newGraph(t,
				org.Unit{ID: "R"},
				org.Unit{ID: "A", Parent: "R"},
				org.Unit{ID: "B", Parent: "R"},
				org.Unit{ID: "C", Parent: "R"},
				org.Unit{ID: "D", Parent: "R"},
				org.Unit{ID: "a1", Parent: "A"},
				org.Unit{ID: "a2", Parent: "A"},
				org.Unit{ID: "a3", Parent: "A"},
				org.Unit{ID: "c1", Parent: "C"},
				org.Unit{ID: "a1x", Parent: "a1"},
				org.Unit{ID: "a3x", Parent: "a3"},
				org.Unit{ID: "c1x", Parent: "c1"},
				org.Unit{ID: "c1y", Parent: "c1"},
			)
		}, scenarioConfig},
		shape{"chain_beside_fan", func(t testing.TB) *org.Graph {
			return newGraph(t,
				org.Unit{ID: "R"},
				org.Unit{ID: "X", Parent: "R"},
				org.Unit{ID: "Y", Parent: "R"},
				org.Unit{ID: "x1", Parent: "X"},
				org.Unit{ID: "x2", Parent: "X"},
				org.Unit{ID: "x3", Parent: "X"},
				org.Unit{ID: "y1", Parent: "Y"},
				org.Unit{ID: "y2", Parent: "y1"},
				org.Unit{ID: "y3", Parent: "y2"},
			)
		}, DefaultConfig()},
	)

	for _, sh := range shapes {
		t.Run(sh.name, func(t *testing.T) {
			g := sh.graph(t)
			cfg := sh.cfg
			res, err := Calculate(g, org.All(g), WithConfig(cfg))
			if err != nil {
				t.Fatalf("Calculate() error: %v", err)
			}

			if len(res.Nodes) != g.Len() {
				t.Fatalf("Nodes = %d, want %d", len(res.Nodes), g.Len())
			}
			seen := make(map[string]bool)
			for _, n := range res.Nodes {
				if seen[n.ID] {
					t.Errorf("unit %s appears twice", n.ID)
				}
				seen[n.ID] = true
			}

			for _, n := range res.Nodes {
				u, _ := g.Unit(n.ID)
				if u.Parent != "" && res.Levels[n.ID] != res.Levels[u.Parent]+1 {
					t.Errorf("depth(%s) = %d, parent depth %d", n.ID, res.Levels[n.ID], res.Levels[u.Parent])
				}
			}

			byParent := make(map[string][]Node)
			for _, n := range res.Nodes {
				u, _ := g.Unit(n.ID)
				byParent[u.Parent] = append(byParent[u.Parent], n)
			}
			for parent, siblings := range byParent {
				for i := range siblings {
					for j := i + 1; j < len(siblings); j++ {
						if d := math.Abs(siblings[i].X - siblings[j].X); d < cfg.HSpacing {
							t.Errorf("siblings under %q: %s and %s are %g apart", parent, siblings[i].ID, siblings[j].ID, d)
						}
					}
				}
			}

			byRow := make(map[int][]Node)
			for _, n := range res.Nodes {
				byRow[res.Levels[n.ID]] = append(byRow[res.Levels[n.ID]], n)
			}
			for depth, row := range byRow {
				for i := range row {
					for j := i + 1; j < len(row); j++ {
						if d := math.Abs(row[i].X - row[j].X); d < cfg.HSpacing {
							t.Errorf("row %d: %s and %s are %g apart", depth, row[i].ID, row[j].ID, d)
						}
					}
				}
			}

			if len(res.Connections) != g.Len()-1 {
				t.Errorf("Connections = %d, want %d", len(res.Connections), g.Len()-1)
			}
		})
	}
}

func TestCalculateConcurrent(t *testing.T) {
	g := wideGraph(t, 3, 3)
	want, err := Calculate(g, org.All(g))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Calculate(g, org.All(g))
			if err != nil {
				t.Error(err)
				return
			}
			if diff := deep.Equal(got.Nodes, want.Nodes); diff != nil {
				t.Error(diff)
			}
		}()
	}
	wg.Wait()
}

func TestEngine(t *testing.T) {
	g := companyGraph(t)
	rec := &Recorder{}
	e := NewEngine(g, scenarioConfig, rec)

	res, err := e.Layout([]string{"VP-Sales", "Rep1", "Rep2"}, "")
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if res.Config() != scenarioConfig {
		t.Errorf("Config() = %+v, want %+v", res.Config(), scenarioConfig)
	}
	if rec.Count(ExcludedParentRoot) != 1 {
		t.Errorf("ExcludedParentRoot events = %d, want 1", rec.Count(ExcludedParentRoot))
	}

	sub, err := e.Layout([]string{"VP-Sales", "Rep1", "Rep2"}, "VP-Sales")
	if err != nil {
		t.Fatalf("Layout(base) error: %v", err)
	}
	if diff := deep.Equal(sub.Nodes, res.Nodes); diff != nil {
		t.Errorf("base layout differs from root-selected layout: %v", diff)
	}
}

func TestLogDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	g := newGraph(t, org.Unit{ID: "a", Parent: "b"}, org.Unit{ID: "b", Parent: "a"})
	if _, err := Calculate(g, []string{"a", "b"}, WithDiagnostics(LogDiagnostics(logger))); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "layout fallback") || !strings.Contains(out, string(DegenerateRootSet)) {
		t.Errorf("log output = %q, want degenerate root warning", out)
	}

	if _, ok := LogDiagnostics(nil).(NopDiagnostics); !ok {
		t.Error("LogDiagnostics(nil) is not NopDiagnostics")
	}
}

func TestTee(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	d := Tee(a, nil, b)

	g := newGraph(t, org.Unit{ID: "a", Parent: "b"}, org.Unit{ID: "b", Parent: "a"})
	if _, err := Calculate(g, []string{"a", "b"}, WithDiagnostics(d)); err != nil {
		t.Fatal(err)
	}
	if a.Count(DegenerateRootSet) != 1 || b.Count(DegenerateRootSet) != 1 {
		t.Errorf("Tee() delivered %d and %d events, want 1 each", a.Count(DegenerateRootSet), b.Count(DegenerateRootSet))
	}
}

// wideGraph builds a complete tree with the given fanout and number of levels.
func wideGraph(t testing.TB, fanout, depth int) *org.Graph {
	t.Helper()
	g := newGraph(t, org.Unit{ID: "n"})
	level := []string{"n"}
	for d := 1; d < depth; d++ {
		var next []string
		for _, p := range level {
			for i := 0; i < fanout; i++ {
				id := fmt.Sprintf("%s.%d", p, i)
				if err := g.AddUnit(org.Unit{ID: id, Parent: p}); err != nil {
					t.Fatal(err)
				}
				next = append(next, id)
			}
		}
		level = next
	}
	return g
}

// unevenGraph has two sibling parents whose children sit far apart on the
// row below, pulling both midpoints toward each other.
func unevenGraph(t testing.TB) *org.Graph {
	return newGraph(t,
		org.Unit{ID: "G"},
		org.Unit{ID: "P1", Parent: "G"},
		org.Unit{ID: "P2", Parent: "G"},
		org.Unit{ID: "c1", Parent: "P1"},
		org.Unit{ID: "c2", Parent: "P1"},
		org.Unit{ID: "d1", Parent: "P2"},
		org.Unit{ID: "L1", Parent: "c1"},
		org.Unit{ID: "L2", Parent: "d1"},
	)
}

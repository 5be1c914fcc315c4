package svg

import (
	"bytes"
	"strings"
	"testing"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
)

func scenario(t *testing.T) graph.Layout {
	t.Helper()
	g := org.New()
	for _, u := range []org.Unit{
		{ID: "CEO", Attrs: map[string]string{"name": "Ada <CEO>", "title": "Chief Executive"}},
		{ID: "VP-Sales", Parent: "CEO"},
		{ID: "VP-Eng", Parent: "CEO"},
		{ID: "Rep1", Parent: "VP-Sales"},
		{ID: "Rep2", Parent: "VP-Sales"},
	} {
		if err := g.AddUnit(u); err != nil {
			t.Fatal(err)
		}
	}
	cfg := layout.Config{Margin: 20, HSpacing: 150, VSpacing: 100, BoxWidth: 100, BoxHeight: 50}
	res, err := layout.Calculate(g, org.All(g), layout.WithConfig(cfg))
	if err != nil {
		t.Fatal(err)
	}
	return graph.FromResult(res, g)
}

func TestRenderSVG(t *testing.T) {
	l := scenario(t)
	out := string(RenderSVG(l))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-50.00 0.00 440.00 290.00"`) {
		t.Errorf("unexpected svg header: %s", strings.SplitN(out, "\n", 2)[0])
	}
	if got := strings.Count(out, `class="unit"`); got != 5 {
		t.Errorf("unit boxes = %d, want 5", got)
	}
	if got := strings.Count(out, `class="connector"`); got != 4 {
		t.Errorf("connectors = %d, want 4", got)
	}
	if !strings.Contains(out, `d="M 207.50 70.00 V 95.00 H 95.00 V 120.00"`) {
		t.Error("missing CEO→VP-Sales elbow")
	}
	if !strings.Contains(out, "Ada &lt;CEO&gt;") {
		t.Error("label not escaped")
	}
	if strings.Contains(out, `class="title"`) {
		t.Error("titles rendered without WithTitles")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("svg not closed")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	l := scenario(t)
	out := string(RenderSVG(l, WithStyle(Rounded{}), WithTitles(), WithBackground("#fafafa")))

	for _, want := range []string{`filter id="shadow"`, `rx="8"`, `class="title"`, "Chief Executive", `fill="#fafafa"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	l := scenario(t)
	first := RenderSVG(l, WithStyle(Rounded{}))
	for i := 0; i < 5; i++ {
		if !bytes.Equal(RenderSVG(l, WithStyle(Rounded{})), first) {
			t.Fatal("RenderSVG output differs between runs")
		}
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	out := string(RenderSVG(graph.Layout{}))
	if !strings.Contains(out, "<svg") || strings.Contains(out, "<rect") {
		t.Errorf("empty layout output = %q", out)
	}
}

func TestStyleByName(t *testing.T) {
	tests := []struct {
		name string
		want Style
	}{
		{"", Simple{}},
		{graph.StyleSimple, Simple{}},
		{graph.StyleRounded, Rounded{}},
	}
	for _, tt := range tests {
		got, err := StyleByName(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("StyleByName(%q) = %T, %v, want %T", tt.name, got, err, tt.want)
		}
	}

	if _, err := StyleByName("handdrawn"); !orgerrors.Is(err, orgerrors.ErrCodeInvalidStyle) {
		t.Errorf("StyleByName(handdrawn) error = %v, want INVALID_STYLE", err)
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label string
		width float64
		want  string
	}{
		{"CEO", 100, "CEO"},
		{"A very long department name", 60, "A very .."},
		{"Überraschungsabteilung", 40, "Über.."},
	}
	for _, tt := range tests {
		if got := TruncateLabel(tt.label, tt.width, 10); got != tt.want {
			t.Errorf("TruncateLabel(%q, %g) = %q, want %q", tt.label, tt.width, got, tt.want)
		}
	}
}

func TestFontSize(t *testing.T) {
	short := FontSize(Box{Label: "A", W: 120, H: 60})
	long := FontSize(Box{Label: strings.Repeat("x", 80), W: 120, H: 60})
	if short > fontSizeMax {
		t.Errorf("FontSize(short) = %g exceeds max", short)
	}
	if long != fontSizeMin {
		t.Errorf("FontSize(long) = %g, want min %g", long, fontSizeMin)
	}
	if short <= long {
		t.Errorf("FontSize(short) = %g, want > %g", short, long)
	}
}

package pipeline

import (
	"testing"

	"github.com/go-test/deep"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !orgerrors.Is(err, orgerrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, orgerrors.GetCode(err), orgerrors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"rounded", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateRenderer(t *testing.T) {
	for _, r := range []string{"native", "graphviz"} {
		if err := ValidateRenderer(r); err != nil {
			t.Errorf("ValidateRenderer(%q) error = %v", r, err)
		}
	}
	if err := ValidateRenderer("cairo"); err == nil {
		t.Error("ValidateRenderer(cairo) should fail")
	}
}

func TestParseFilter(t *testing.T) {
	u := org.Unit{ID: "x", Attrs: map[string]string{"dept": "sales"}}
	tests := []struct {
		in      string
		wantNil bool
		match   bool
		wantErr bool
	}{
		{"", true, false, false},
		{"dept=sales", false, true, false},
		{" dept = sales ", false, true, false},
		{"dept=eng", false, false, false},
		{"dept", true, false, true},
		{"=sales", true, false, true},
	}
	for _, tt := range tests {
		pred, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if (pred == nil) != tt.wantNil {
			t.Errorf("ParseFilter(%q) nil = %v, want %v", tt.in, pred == nil, tt.wantNil)
			continue
		}
		if pred != nil && pred(u) != tt.match {
			t.Errorf("ParseFilter(%q)(unit) = %v, want %v", tt.in, pred(u), tt.match)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{" SVG , dot,svg,", []string{"svg", "dot"}},
		{"", nil},
	}
	for _, tt := range tests {
		if diff := deep.Equal(ParseFormats(tt.in), tt.want); diff != nil {
			t.Errorf("ParseFormats(%q): %v", tt.in, diff)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	var o Options
	o.SetLayoutDefaults()
	if o.Layout != layout.DefaultConfig() {
		t.Errorf("Layout = %+v, want defaults", o.Layout)
	}
	if o.Logger == nil || o.Diagnostics == nil {
		t.Error("SetLayoutDefaults() left logger or diagnostics nil")
	}

	partial := Options{Layout: layout.Config{HSpacing: 200}}
	partial.SetLayoutDefaults()
	want := layout.Config{Margin: 0, HSpacing: 200, VSpacing: layout.DefaultVSpacing, BoxWidth: layout.DefaultBoxWidth, BoxHeight: layout.DefaultBoxHeight}
	if partial.Layout != want {
		t.Errorf("Layout = %+v, want %+v", partial.Layout, want)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	var o Options
	o.SetRenderDefaults()
	if diff := deep.Equal(o.Formats, []string{FormatSVG}); diff != nil {
		t.Errorf("Formats: %v", diff)
	}
	if o.Style != DefaultStyle || o.Renderer != DefaultRenderer || o.Scale != DefaultScale {
		t.Errorf("got style %q renderer %q scale %g", o.Style, o.Renderer, o.Scale)
	}
}

func TestValidateForLoad(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"file", Options{Input: "data/company.csv"}, false},
		{"mongo", Options{MongoURI: "mongodb://localhost", MongoDatabase: "hr"}, false},
		{"nothing", Options{}, true},
		{"both", Options{Input: "a.csv", MongoURI: "mongodb://localhost", MongoDatabase: "hr"}, true},
		{"mongo without db", Options{MongoURI: "mongodb://localhost"}, true},
		{"unsupported ext", Options{Input: "company.xlsx"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLoad()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForLoad() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	o := Options{MongoURI: "mongodb://localhost", MongoDatabase: "hr"}
	if err := o.ValidateForLoad(); err != nil {
		t.Fatal(err)
	}
	if o.MongoCollection != DefaultMongoCollection {
		t.Errorf("MongoCollection = %q, want %q", o.MongoCollection, DefaultMongoCollection)
	}
	if got := o.Source(); got != "mongodb:hr.units" {
		t.Errorf("Source() = %q, want %q", got, "mongodb:hr.units")
	}
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"base and depth", Options{Base: "CEO", Depth: 2}, false},
		{"depth without base", Options{Depth: 2}, true},
		{"negative depth", Options{Base: "CEO", Depth: -1}, true},
		{"bad base", Options{Base: " CEO"}, true},
		{"bad filter", Options{Filter: "dept"}, true},
		{"negative margin", Options{Layout: layout.Config{Margin: -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateForRender(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"all formats", Options{Formats: []string{"svg", "dot", "png", "pdf", "json"}}, false},
		{"bad format", Options{Formats: []string{"gif"}}, true},
		{"bad style", Options{Style: "fancy"}, true},
		{"bad renderer", Options{Renderer: "cairo"}, true},
		{"negative scale", Options{Scale: -2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForRender() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLayoutKeyOptsTracksConfig(t *testing.T) {
	a := Options{Base: "CEO"}
	a.SetLayoutDefaults()
	b := a
	b.Layout.Margin = 0

	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("LayoutKeyOpts() ignores margin")
	}
	if a.ArtifactKeyOpts(FormatSVG).Scale != 0 {
		t.Error("ArtifactKeyOpts(svg) carries the PNG scale")
	}
}

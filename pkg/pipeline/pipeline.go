// Package pipeline provides the load → layout → render pipeline for orgchart.
//
// The CLI and the HTTP API both run charts through this package, so they
// share defaults, validation, caching and observability hooks.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read units from a data file (CSV, TSV, YAML, JSON) or MongoDB
//  2. Layout: select targets, run the layout engine, convert to [graph.Layout]
//  3. Render: produce SVG, DOT, PNG, PDF or JSON output
//
// Each stage can be run on its own or as part of [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "company.csv",
//	    Base:    "CTO",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStyle is the default visual style.
	DefaultStyle = graph.StyleSimple

	// DefaultRenderer draws boxes with the built-in SVG writer.
	DefaultRenderer = RendererNative

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultMongoCollection is used when only a database is given.
	DefaultMongoCollection = "units"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Renderers.
const (
	// RendererNative writes SVG directly from the layout.
	RendererNative = "native"

	// RendererGraphviz renders the DOT form of the layout through Graphviz.
	RendererGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidRenderers is the set of supported renderers.
var ValidRenderers = map[string]bool{
	RendererNative:   true,
	RendererGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input           string `json:"-"`
	MongoURI        string `json:"-"`
	MongoDatabase   string `json:"-"`
	MongoCollection string `json:"-"`

	// Target selection
	Base   string `json:"base,omitempty"`
	Depth  int    `json:"depth,omitempty"`  // Levels below Base to include (0 = all)
	Filter string `json:"filter,omitempty"` // key=value attribute filter

	// Layout options
	Layout layout.Config `json:"layout"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Renderer string   `json:"renderer,omitempty"`
	Titles   bool     `json:"titles,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger      *log.Logger        `json:"-"`
	Diagnostics layout.Diagnostics `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded organization.
	Graph *org.Graph

	// GraphHash is the content hash of the canonical graph JSON.
	GraphHash string

	// Layout is the computed chart.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	UnitCount  int
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return orgerrors.New(orgerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, dot, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !graph.ValidStyle(style) {
		return orgerrors.New(orgerrors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, rounded)", style)
	}
	return nil
}

// ValidateRenderer checks that a renderer is valid.
func ValidateRenderer(renderer string) error {
	if !ValidRenderers[renderer] {
		return orgerrors.New(orgerrors.ErrCodeInvalidInput, "invalid renderer: %q (must be one of: native, graphviz)", renderer)
	}
	return nil
}

// ParseFilter parses a key=value attribute filter. An empty string yields
// a nil predicate.
func ParseFilter(s string) (org.Predicate, error) {
	if s == "" {
		return nil, nil
	}
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return nil, orgerrors.New(orgerrors.ErrCodeInvalidInput, "invalid filter %q (want key=value)", s)
	}
	return org.AttrEquals(key, strings.TrimSpace(value)), nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that exactly one data source is set.
func (o *Options) ValidateForLoad() error {
	switch {
	case o.Input == "" && o.MongoURI == "":
		return orgerrors.New(orgerrors.ErrCodeInvalidInput, "input file or mongo uri is required")
	case o.Input != "" && o.MongoURI != "":
		return orgerrors.New(orgerrors.ErrCodeInvalidInput, "input file and mongo uri are mutually exclusive")
	case o.MongoURI != "" && o.MongoDatabase == "":
		return orgerrors.New(orgerrors.ErrCodeInvalidInput, "mongo database is required")
	case o.Input != "":
		if err := orgerrors.ValidateDataFilename(filepath.Base(o.Input)); err != nil {
			return err
		}
	}
	if o.MongoURI != "" && o.MongoCollection == "" {
		o.MongoCollection = DefaultMongoCollection
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults fills an unset layout configuration with the engine
// defaults. A partially set configuration keeps its zero margin.
func (o *Options) SetLayoutDefaults() {
	if o.Layout == (layout.Config{}) {
		o.Layout = layout.DefaultConfig()
	} else {
		o.Layout = o.Layout.WithDefaults()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Diagnostics == nil {
		o.Diagnostics = layout.NopDiagnostics{}
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Depth < 0 {
		return orgerrors.New(orgerrors.ErrCodeInvalidInput, "depth must be non-negative, got %d", o.Depth)
	}
	if o.Depth > 0 && o.Base == "" {
		return orgerrors.New(orgerrors.ErrCodeInvalidInput, "depth requires a base unit")
	}
	if o.Base != "" {
		if err := orgerrors.ValidateUnitID(o.Base); err != nil {
			return err
		}
	}
	if _, err := ParseFilter(o.Filter); err != nil {
		return err
	}
	return o.Layout.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateRenderer(o.Renderer); err != nil {
		return err
	}
	if o.Scale < 0 {
		return orgerrors.New(orgerrors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// Source describes where units are loaded from, for logs and hooks.
func (o *Options) Source() string {
	if o.MongoURI != "" {
		return fmt.Sprintf("mongodb:%s.%s", o.MongoDatabase, o.MongoCollection)
	}
	return o.Input
}

package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/render"
	"github.com/matzehuels/orgchart/pkg/render/nodelink"
	"github.com/matzehuels/orgchart/pkg/render/svg"
)

// Render generates output artifacts in the requested formats. SVG is
// rendered at most once and shared by the PNG and PDF conversions.
func Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	l.Style = opts.Style
	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Titles})

	var svgData []byte
	renderedSVG := func() ([]byte, error) {
		if svgData != nil {
			return svgData, nil
		}
		var err error
		svgData, err = renderSVG(ctx, l, dot, opts)
		return svgData, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = renderedSVG()
		case FormatDOT:
			data = []byte(dot)
		case FormatPNG:
			if opts.Renderer == RendererGraphviz {
				data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
				break
			}
			if data, err = renderedSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if opts.Renderer == RendererGraphviz {
				data, err = nodelink.RenderPDF(ctx, dot)
				break
			}
			if data, err = renderedSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(ctx context.Context, l graph.Layout, dot string, opts Options) ([]byte, error) {
	if opts.Renderer == RendererGraphviz {
		return nodelink.RenderSVG(ctx, dot)
	}
	style, err := svg.StyleByName(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []svg.Option{svg.WithStyle(style)}
	if opts.Titles {
		svgOpts = append(svgOpts, svg.WithTitles())
	}
	return svg.RenderSVG(l, svgOpts...), nil
}

// ArtifactKeyOpts returns cache key options for rendering one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:   format,
		Renderer: o.Renderer,
		Style:    o.Style,
		Titles:   o.Titles,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

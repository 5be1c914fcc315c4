package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// renderCommand creates the render command for writing chart artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		flags  chartFlags
	)

	cmd := &cobra.Command{
		Use:   "render [data file | layout.json]",
		Short: "Render an org chart to SVG, DOT, PNG, PDF or JSON",
		Long: `Render an org chart to SVG, DOT, PNG, PDF or JSON.

The input is either organization data (.csv, .tsv, .yaml, .yml, .json),
in which case the layout is computed first, or a file written by the
layout command (*.layout.json), which is rendered as is.

The native renderer draws boxes and elbow connectors itself and converts
SVG to PNG or PDF with rsvg-convert. The graphviz renderer pins every box
at its computed position and lets Graphviz produce the artifacts.`,
		Example: `  orgchart render company.csv
  orgchart render company.csv -f svg,png --style rounded --titles
  orgchart render company.csv --base vp-eng --depth 2 -o eng.svg
  orgchart render company.layout.json -f pdf --renderer graphviz`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, firstArg(args))
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	flags.register(cmd, true)

	return cmd
}

// runRender computes or reads the layout, renders every requested format,
// and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	prog := newProgress(c.Logger)

	var (
		l      graph.Layout
		units  int
		cached bool
		err    error
	)
	if isLayoutFile(opts.Input) {
		l, err = graph.ReadLayoutFile(opts.Input)
		if err != nil {
			return fmt.Errorf("read layout %s: %w", opts.Input, err)
		}
		units = len(l.Nodes)
	} else {
		l, units, cached, err = c.computeLayout(ctx, opts, noCache)
		if err != nil {
			return err
		}
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spin := newSpinner(ctx, "Rendering "+strings.Join(opts.Formats, ", ")+"...")
	spin.Start()
	artifacts, renderCached, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spin.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spin.Stop()

	paths, err := writeArtifacts(artifacts, opts, output)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(units, len(l.Nodes), len(l.Depths()), cached && renderCached)
	printDiagnostics(l.Diagnostics, c.verbose())
	return nil
}

// writeArtifacts writes each artifact in format order and returns the
// written paths.
func writeArtifacts(artifacts map[string][]byte, opts pipeline.Options, output string) ([]string, error) {
	formats := slices.Clone(opts.Formats)
	if len(formats) == 0 {
		for f := range artifacts {
			formats = append(formats, f)
		}
		slices.Sort(formats)
	}

	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(opts, output, format, len(formats) == 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath names the output file for format. A single format goes to
// output verbatim when set. Otherwise output (minus a known extension) or
// the input stem is the base, and the format is the extension. JSON gets
// .layout.json so it never overwrites a JSON data file.
func artifactPath(opts pipeline.Options, output, format string, single bool) string {
	if single && output != "" {
		return output
	}
	base := outputBase(opts)
	if output != "" {
		base = output
		if ext := filepath.Ext(output); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			base = strings.TrimSuffix(output, ext)
		}
	}
	if format == pipeline.FormatJSON {
		return base + ".layout.json"
	}
	return base + "." + format
}

func isLayoutFile(path string) bool {
	return strings.HasSuffix(path, ".layout.json")
}

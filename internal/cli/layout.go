package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  chartFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [data file]",
		Short: "Compute a chart layout from organization data",
		Long: `Compute a chart layout from organization data.

The layout command reads units from a CSV, TSV, YAML or JSON file (or from
MongoDB with --mongo-uri), assigns levels and horizontal positions, and
writes a layout.json file that the render command can turn into SVG, PNG
or PDF without recomputing.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, firstArg(args))
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd, false)

	return cmd
}

// runLayout loads the units, computes the layout, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	l, units, cached, err := c.computeLayout(ctx, opts, noCache)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase(opts) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(units, len(l.Nodes), len(l.Depths()), cached)
	printDiagnostics(l.Diagnostics, c.verbose())
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// computeLayout runs the load and layout stages behind a spinner and
// returns the layout, the number of loaded units, and whether the layout
// came from the cache.
func (c *CLI) computeLayout(ctx context.Context, opts pipeline.Options, noCache bool) (graph.Layout, int, bool, error) {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return graph.Layout{}, 0, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spin := newSpinner(ctx, "Loading units from "+opts.Source()+"...")
	spin.Start()

	g, err := runner.Load(ctx, opts)
	if err != nil {
		spin.StopWithError("Load failed")
		return graph.Layout{}, 0, false, fmt.Errorf("load %s: %w", opts.Source(), err)
	}

	spin.SetMessage(fmt.Sprintf("Computing layout for %d units...", g.Len()))
	l, cached, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spin.StopWithError("Layout failed")
		return graph.Layout{}, 0, false, fmt.Errorf("compute layout: %w", err)
	}
	spin.Stop()

	if ctx.Err() != nil {
		return graph.Layout{}, 0, false, ctx.Err()
	}
	return l, g.Len(), cached, nil
}

// verbose reports whether debug logging is enabled.
func (c *CLI) verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// outputBase derives the output path stem: the input path without its
// extension, or database.collection for MongoDB sources.
func outputBase(opts pipeline.Options) string {
	if opts.Input == "" {
		return opts.MongoDatabase + "." + opts.MongoCollection
	}
	base := strings.TrimSuffix(opts.Input, ".layout.json")
	if base != opts.Input {
		return base
	}
	return strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input))
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// levelsCommand creates the levels command, which prints the computed
// level structure instead of writing files.
func (c *CLI) levelsCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "levels [data file | layout.json]",
		Short: "Print the level table and layout diagnostics",
		Long: `Print the level table and layout diagnostics.

Each row lists one depth of the chart with its units left to right. Root
decisions and fallbacks reported while computing the layout follow the
table, which makes it easy to spot units whose parent is missing or
filtered out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, firstArg(args))
			if err != nil {
				return err
			}
			return c.runLevels(cmd.Context(), opts, flags.noCache)
		},
	}

	flags.register(cmd, false)
	return cmd
}

func (c *CLI) runLevels(ctx context.Context, opts pipeline.Options, noCache bool) error {
	var (
		l      graph.Layout
		units  int
		cached bool
		err    error
	)
	if isLayoutFile(opts.Input) {
		if l, err = graph.ReadLayoutFile(opts.Input); err != nil {
			return fmt.Errorf("read layout %s: %w", opts.Input, err)
		}
		units = len(l.Nodes)
	} else if l, units, cached, err = c.computeLayout(ctx, opts, noCache); err != nil {
		return err
	}

	title := "Levels"
	if l.Base != "" {
		title += " below " + l.Base
	}
	fmt.Fprintln(out, styleTitle.Render(title))
	fmt.Fprintln(out, levelTable(l))
	printStats(units, len(l.Nodes), len(l.Depths()), cached)

	if len(l.Diagnostics) == 0 {
		return nil
	}
	printNewline()
	printDiagnostics(l.Diagnostics, true)
	return nil
}

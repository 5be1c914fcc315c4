package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command: an interactive unit picker
// that renders the chart below the chosen unit.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		output string
		flags  chartFlags
	)

	cmd := &cobra.Command{
		Use:   "browse [data file]",
		Short: "Pick a base unit interactively and render its subtree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, firstArg(args))
			if err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	flags.register(cmd, true)

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	opts.Logger = c.Logger
	g, err := runner.Load(ctx, opts)
	runner.Close()
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source(), err)
	}
	if g.Len() == 0 {
		printWarning("No units in %s", opts.Source())
		return nil
	}

	final, err := tea.NewProgram(newBrowseModel(g), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	m, ok := final.(browseModel)
	if !ok || m.Selected == "" {
		printInfo("Nothing selected")
		return nil
	}

	opts.Base = m.Selected
	printInfo("Rendering chart below %s", styleHighlight.Render(m.Selected))
	return c.runRender(ctx, opts, output, noCache)
}

// treeRow is one line of the unit tree.
type treeRow struct {
	ID       string
	Label    string
	Depth    int
	Children int
}

// unitTree flattens g depth-first from its roots, children in insertion
// order. Units only reachable through a parent cycle are appended at
// depth zero so every unit can be picked.
func unitTree(g *org.Graph) []treeRow {
	var rows []treeRow
	visited := make(map[string]bool, g.Len())

	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		if visited[id] {
			return
		}
		visited[id] = true
		u, _ := g.Unit(id)
		rows = append(rows, treeRow{ID: id, Label: u.Label(), Depth: depth, Children: len(g.Children(id))})
		for _, child := range g.Children(id) {
			walk(child, depth+1)
		}
	}

	for _, root := range g.Roots() {
		walk(root, 0)
	}
	for _, id := range g.IDs() {
		walk(id, 0)
	}
	return rows
}

// browseModel is the bubbletea model for picking a base unit.
type browseModel struct {
	Rows     []treeRow
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

func newBrowseModel(g *org.Graph) browseModel {
	return browseModel{Rows: unitTree(g), Height: 15}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Rows))
		case "end", "G":
			m.move(len(m.Rows))
		case "enter":
			if len(m.Rows) > 0 {
				m.Selected = m.Rows[m.Cursor].ID
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the rows, and scrolls the
// window to keep it visible.
func (m *browseModel) move(delta int) {
	m.Cursor = min(max(m.Cursor+delta, 0), max(len(m.Rows)-1, 0))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Base Unit"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render subtree  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor, style := "  ", listNormalStyle
		if i == m.Cursor {
			cursor, style = "▸ ", listSelectedStyle
		}
		line := cursor + strings.Repeat("  ", r.Depth) + style.Render(r.Label)
		if r.Label != r.ID {
			line += " " + listDimStyle.Render("("+r.ID+")")
		}
		if r.Children > 0 {
			line += listDimStyle.Render(fmt.Sprintf("  %d below", r.Children))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}

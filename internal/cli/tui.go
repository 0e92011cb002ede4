package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/xformgraph/pkg/graph"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// tuiCommand creates the "tui" command.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse transform states and evaluate interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(false)
			if err != nil {
				return err
			}
			// Keep log lines from tearing the alternate screen.
			c.Logger.SetOutput(io.Discard)
			_, err = tea.NewProgram(NewGraphModel(cmd.Context(), ws.graph), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// =============================================================================
// GraphModel - Interactive state browser
// =============================================================================

// GraphModel is the bubbletea model for browsing a graph. Keys move the
// cursor, evaluate the graph and refresh states; the graph is only touched
// from Update and View, which bubbletea never runs concurrently.
type GraphModel struct {
	ctx    context.Context
	Graph  *graph.Graph
	Order  []string
	Cursor int
	Offset int
	Height int
	Report *graph.Report
}

// NewGraphModel creates a model over g.
func NewGraphModel(ctx context.Context, g *graph.Graph) GraphModel {
	return GraphModel{
		ctx:    ctx,
		Graph:  g,
		Order:  g.Order(),
		Height: 15,
	}
}

func (m GraphModel) Init() tea.Cmd {
	return nil
}

func (m GraphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Order)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "e":
			m.Report = m.Graph.Evaluate(m.ctx)
		case "r":
			m.Graph.RefreshStates()
			m.Order = m.Graph.Order()
			m.Cursor = min(m.Cursor, max(len(m.Order)-1, 0))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
	}
	return m, nil
}

func (m GraphModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Transform Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  e evaluate  r refresh  q quit"))
	b.WriteString("\n\n")

	if len(m.Order) == 0 {
		b.WriteString(listDimStyle.Render("  graph is empty"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Order))
	states := m.Graph.States()
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		name := m.Order[i]
		x, ok := m.Graph.Xform(name)
		if !ok {
			continue
		}
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		tick, _ := m.Graph.EvaluationTime(name)
		rows = append(rows, []string{cursor, name, x.Type(), states[name].String(), fmt.Sprint(tick)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Type", "State", "Tick").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Order) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 3 {
				base = stateStyles[states[m.Order[idx]]]
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString(m.summary())
	return b.String()
}

// detail describes the xform under the cursor.
func (m GraphModel) detail() string {
	name := m.Order[m.Cursor]
	x, ok := m.Graph.Xform(name)
	if !ok {
		return ""
	}
	var parts []string
	for _, p := range x.Config().Descriptors() {
		v, ok := x.Config().Text(p.Name)
		if !ok {
			v = "unset"
		}
		parts = append(parts, p.Name+"="+v)
	}
	deps := m.Graph.Dependencies(name)
	line := fmt.Sprintf("  %s  config: %s  deps: %s",
		StyleHighlight.Render(name), orDash(strings.Join(parts, " ")), orDash(strings.Join(deps, ", ")))
	return listDimStyle.Render(line) + "\n"
}

// summary describes the last evaluation pass.
func (m GraphModel) summary() string {
	if m.Report == nil {
		return ""
	}
	r := m.Report
	line := fmt.Sprintf("  run %s: %d applied, %d failed, %d blocked, %d skipped (%s)",
		r.RunID[:8], len(r.Applied), len(r.Failed), len(r.Blocked), len(r.Skipped), r.Duration)
	var b strings.Builder
	b.WriteString(listDimStyle.Render(line))
	b.WriteString("\n")
	for _, e := range r.Errors {
		b.WriteString("  " + styleIconError.Render(iconError) + " " + e.Error() + "\n")
	}
	return b.String()
}

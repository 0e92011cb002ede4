package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/matzehuels/xformgraph/pkg/errors"
	"github.com/matzehuels/xformgraph/pkg/graph"
	pkgio "github.com/matzehuels/xformgraph/pkg/io"
)

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transforms with their state",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(false)
			if err != nil {
				return err
			}
			if ws.graph.Len() == 0 {
				printInfo("Graph is empty")
				return nil
			}
			fmt.Println(xformTable(ws.graph))
			printStats(ws.graph.Len(), len(ws.graph.Connections()))
			return nil
		},
	}
}

// xformTable renders every xform in evaluation order.
func xformTable(g *graph.Graph) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	states := g.States()
	order := g.Order()

	rows := make([][]string, 0, len(order))
	for _, name := range order {
		x, _ := g.Xform(name)
		tick, _ := g.EvaluationTime(name)
		rows = append(rows, []string{name, x.Type(), renderState(states[name]), fmt.Sprint(tick)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Type", "State", "Tick").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show <name>",
		Short:             "Show a transform's ports, configuration and links",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeXformNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(false)
			if err != nil {
				return err
			}
			g := ws.graph
			x, ok := g.Xform(args[0])
			if !ok {
				return errors.New(errors.ErrCodeNoSuchXform, "no such xform: %s", args[0])
			}
			state, _ := g.StateFor(x.Name())
			tick, _ := g.EvaluationTime(x.Name())

			fmt.Println(StyleTitle.Render(x.Name()))
			printKeyValue("type", x.Type())
			printKeyValue("state", renderState(state))
			printKeyValue("tick", fmt.Sprint(tick))

			if props := x.Config().Descriptors(); len(props) > 0 {
				printNewline()
				fmt.Println(StyleDim.Render("config"))
				for _, p := range props {
					v, ok := x.Config().Text(p.Name)
					if !ok {
						v = StyleWarning.Render("unset")
					}
					printKeyValue("  "+p.Name, v+" "+StyleDim.Render(p.Type.String()))
				}
			}

			printNewline()
			fmt.Println(StyleDim.Render("inputs"))
			for _, p := range x.InputPorts() {
				in := x.Name() + ":" + p.Name
				src := StyleDim.Render("unconnected")
				if out, ok := g.ConnectionTo(inPort(x.Name(), p.Name)); ok {
					src = out.String()
				}
				req := ""
				if p.Required {
					req = " *"
				}
				printKeyValue("  "+p.Name+req, src+" "+StyleDim.Render(iconArrow+" "+in))
			}
			fmt.Println(StyleDim.Render("outputs"))
			for _, p := range x.OutputPorts() {
				dst := StyleDim.Render("unconnected")
				if in, ok := g.ConnectionFrom(outPort(x.Name(), p.Name)); ok {
					dst = in.String()
				}
				printKeyValue("  "+p.Name, StyleDim.Render(iconArrow)+" "+dst)
			}
			return nil
		},
	}
}

// typesCommand creates the "types" command.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered transform types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _ := c.newRegistry()
			for _, typ := range reg.Types() {
				info, err := reg.Describe(typ)
				if err != nil {
					return err
				}
				var ins, outs, props []string
				for _, p := range info.Inputs {
					name := p.Name
					if !p.Required {
						name = "[" + name + "]"
					}
					ins = append(ins, name)
				}
				for _, p := range info.Outputs {
					outs = append(outs, p.Name)
				}
				for _, p := range info.Properties {
					props = append(props, fmt.Sprintf("%s %s", p.Name, strings.ToLower(p.Type.String())))
				}
				fmt.Println(StyleHighlight.Render(typ))
				printDetail("in:     %s", orDash(strings.Join(ins, ", ")))
				printDetail("out:    %s", orDash(strings.Join(outs, ", ")))
				printDetail("config: %s", orDash(strings.Join(props, ", ")))
			}
			return nil
		},
	}
}

// validateCommand creates the "validate" command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a graph document without evaluating it",
		Long: `Check a graph document: its structure, its transform types and
configuration, and its connections. Every structural problem is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.path()
			if len(args) == 1 {
				path = args[0]
			}
			doc, err := pkgio.LoadDocument(path)
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				printError("%s is invalid", path)
				var cause error = err
				if e, ok := err.(*errors.Error); ok && e.Cause != nil {
					cause = e.Cause
				}
				for _, e := range multierr.Errors(cause) {
					printDetail("%v", e)
				}
				return err
			}
			reg, _ := c.newRegistry()
			g, err := pkgio.Build(doc, reg, graph.WithLogger(c.Logger))
			if err != nil {
				printError("%s does not build", path)
				return err
			}
			printSuccess("%s is valid", path)
			printStats(g.Len(), len(g.Connections()))
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

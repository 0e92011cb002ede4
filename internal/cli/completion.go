package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for xformgraph.

Transform names, types and port references complete from the current graph
file.

Bash:
  $ source <(xformgraph completion bash)

Zsh:
  $ xformgraph completion zsh > "${fpath[1]}/_xformgraph"

Fish:
  $ xformgraph completion fish | source

PowerShell:
  PS> xformgraph completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// completeXformNames completes transform names from the graph file.
func (c *CLI) completeXformNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ws, err := c.openWorkspace(false)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, name := range ws.graph.Order() {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeTypes completes registered transform types.
func (c *CLI) completeTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	reg, _ := c.newRegistry()
	return reg.Types(), cobra.ShellCompDirectiveNoFileComp
}

// completePorts completes "xform:port" references. The first argument of
// connect is an output, every other argument an input.
func (c *CLI) completePorts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ws, err := c.openWorkspace(false)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	outputs := len(args) == 0 && cmd.Name() == "connect"
	var refs []string
	for _, x := range ws.graph.Xforms() {
		if outputs {
			for _, p := range x.OutputPorts() {
				refs = append(refs, x.Name()+":"+p.Name)
			}
		} else {
			for _, p := range x.InputPorts() {
				refs = append(refs, x.Name()+":"+p.Name)
			}
		}
	}
	return refs, cobra.ShellCompDirectiveNoFileComp
}

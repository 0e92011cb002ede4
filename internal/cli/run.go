package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xformgraph/pkg/graph"
	"github.com/matzehuels/xformgraph/pkg/raster"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

// runCommand creates the "run" command, which evaluates the graph once.
func (c *CLI) runCommand() *cobra.Command {
	var (
		saveDir string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the graph",
		Long: `Evaluate the graph: every GOOD or STALE transform is applied once, producers
before consumers. A failing transform blocks everything downstream of it but
independent branches still run.

With --save, every texture produced by the pass is written to the given
directory as <xform>_<port>.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(false)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Evaluating...")
			if !asJSON {
				spinner.Start()
			}
			prog := newProgress(loggerFromContext(cmd.Context()))
			rep := ws.graph.Evaluate(cmd.Context())
			if !asJSON {
				spinner.Stop()
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rep); err != nil {
					return err
				}
			} else {
				printReport(rep)
				prog.done("Evaluation finished")
			}

			if saveDir != "" {
				paths, err := saveResults(ws, rep, saveDir)
				if err != nil {
					return err
				}
				if !asJSON {
					for _, p := range paths {
						printFile(p)
					}
				}
			}
			if len(rep.Failed) > 0 {
				return fmt.Errorf("%d transform(s) failed", len(rep.Failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&saveDir, "save", "", "write every output texture as PNG into this directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func printReport(rep *graph.Report) {
	for _, name := range rep.Applied {
		printSuccess("%s", name)
	}
	for _, e := range rep.Errors {
		printError("%s %s", e.Xform, StyleDim.Render(e.Status.String()+": "+e.Message))
	}
	for _, name := range rep.Blocked {
		printWarning("%s blocked by a failed dependency", name)
	}
	if len(rep.Skipped) > 0 {
		printInfo("skipped %s", StyleDim.Render(strings.Join(rep.Skipped, ", ")))
	}
	printDetail("run %s · %d applied · %d failed · %d blocked",
		rep.RunID[:8], len(rep.Applied), len(rep.Failed), len(rep.Blocked))
}

// saveResults writes the textures cached by rep's pass and returns the
// written paths.
func saveResults(ws *workspace, rep *graph.Report, dir string) ([]string, error) {
	var paths []string
	for _, name := range rep.Applied {
		x, ok := ws.graph.Xform(name)
		if !ok {
			continue
		}
		for _, p := range x.OutputPorts() {
			res, ok := ws.graph.ResultAt(outPort(name, p.Name))
			if !ok {
				continue
			}
			tex, ok := res.(xform.Texture)
			if !ok {
				continue
			}
			img, err := ws.textures.Resolve(tex)
			if err != nil {
				return paths, fmt.Errorf("%s:%s: %w", name, p.Name, err)
			}
			path := filepath.Join(dir, name+"_"+p.Name+".png")
			if err := raster.Save(path, img); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

package commands

import (
	"github.com/spf13/cobra"
	"github.com/teranos/stackgrid/am"
	"github.com/teranos/stackgrid/sym"
)

// RenderCmd renders an instance file
var RenderCmd = &cobra.Command{
	Use:   "render <instance>",
	Short: sym.Prefixed("render", sym.CommandDescriptions["render"]),
	Long: sym.Render + ` render — Render technology stacks as a grid

Loads an instance (.xml from Alloy/Forge, or a .yaml/.toml fixture), resolves
every atom of the stack signature and draws one block of rows per stack.

A field that cannot be resolved renders as "none" (or no qualities) and is
logged. With --strict such a field fails its whole stack instead; a failed
stack keeps its title and shows a single red error cell.

Examples:
  stackgrid render stacks.xml > stacks.svg
  stackgrid render stacks.xml -o out/stacks.svg
  stackgrid render stacks.xml -f json
  stackgrid render stacks.xml -f terminal --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	addRenderFlags(RenderCmd)
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringP("format", "f", am.FormatSVG, "Output format: svg, json, terminal")
	cmd.Flags().String("signature", am.DefaultSignature, "Signature whose atoms are stacks")
	cmd.Flags().Bool("strict", false, "Fail a stack when any of its fields cannot be resolved")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	res, err := renderInstance(cfg, args[0], cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if cfg.Render.Output != "" {
		printSummary(cmd.ErrOrStderr(), res, cfg.Render.Output)
	}
	return nil
}

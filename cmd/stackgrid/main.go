package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teranos/stackgrid/am"
	"github.com/teranos/stackgrid/cmd/stackgrid/commands"
	"github.com/teranos/stackgrid/logger"
)

var rootCmd = &cobra.Command{
	Use:   "stackgrid",
	Short: "stackgrid - Render technology stack model instances as a grid",
	Long: `stackgrid - Render technology stack model instances as a grid.

stackgrid reads an instance exported by a relational model finder (Alloy or
Forge XML, or a YAML/TOML fixture), resolves every TechnologyStack atom and
draws its components and qualities as colored boxes.

Available commands:
  render  - Render an instance as SVG, JSON or a terminal table
  stacks  - List the stacks resolved from an instance
  watch   - Re-render whenever the instance changes
  am      - Show and validate configuration ("I am")
  version - Show build information

Examples:
  stackgrid render stacks.xml -o stacks.svg
  stackgrid render stacks.xml -f terminal
  stackgrid stacks stacks.xml --json
  stackgrid watch stacks.xml -o stacks.svg`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")

		// Config errors surface in the command itself; logging falls back to defaults
		jsonLogs := false
		if cfg, err := am.Load(); err == nil {
			jsonLogs = cfg.Log.JSON
			if cfg.Log.Theme != "" {
				logger.SetTheme(cfg.Log.Theme)
			}
		}

		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debugw("Logger initialized",
			"level", logger.LevelName(verbosity),
			"json", jsonLogs,
			"command", cmd.Name())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output JSON instead of human-readable text")

	rootCmd.AddCommand(commands.RenderCmd)
	rootCmd.AddCommand(commands.StacksCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

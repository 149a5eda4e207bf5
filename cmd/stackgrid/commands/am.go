package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/stackgrid/am"
	"github.com/teranos/stackgrid/display"
	"github.com/teranos/stackgrid/errors"
	"github.com/teranos/stackgrid/sym"
	"gopkg.in/yaml.v3"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: sym.Prefixed("am", sym.CommandDescriptions["am"]),
	Long: sym.AM + ` am — Show and validate stackgrid configuration ("I am")

Configuration sources (later overrides earlier):
1. Default values
2. System config (/etc/stackgrid/am.toml)
3. User config (~/.stackgrid/am.toml)
4. Project config (./am.toml, searched up directories)
5. Environment variables (STACKGRID_* prefix, e.g. STACKGRID_GRID_COLUMNS)
6. Command line flags

Examples:
  stackgrid am show                  # Show current configuration
  stackgrid am show --format json    # Show configuration in JSON format
  stackgrid am get grid.columns      # Get a specific value
  stackgrid am validate              # Validate current configuration
  stackgrid am validate --file x.toml  # Validate one file on top of the defaults
  stackgrid am where                 # Show which config files exist`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current stackgrid configuration merged from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., grid.columns, palette.tech.reactjs)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate the merged configuration, or a single am.toml (on top of the defaults) with --file",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	RunE:  runAmWhere,
}

var (
	configFormat string
	validateFile string
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	amValidateCmd.Flags().StringVar(&validateFile, "file", "", "Validate this config file instead of the cascade")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	format := configFormat
	if display.ShouldOutputJSON(cmd) {
		format = "json"
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return display.WriteJSON(out, cfg)

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# stackgrid configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# stackgrid configuration\n%s", string(data))

	default:
		return errors.WithHint(
			errors.Wrapf(errors.ErrUnsupportedFormat, "config format %q", format),
			"supported: toml, json, yaml")
	}

	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	if !am.GetViper().IsSet(key) {
		return errors.NewNotFoundError("configuration key %q", key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), am.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	var (
		cfg    *am.Config
		err    error
		source = "Configuration"
	)
	if validateFile != "" {
		cfg, err = am.LoadFromFile(validateFile)
		source = validateFile
	} else {
		cfg, err = am.Load()
	}
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrapf(err, "%s: validation failed", source)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid\n", sym.OK, source)
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  [DEFAULT]  Built-in defaults")

	for _, path := range am.ConfigPaths() {
		marker := pterm.Gray(sym.None + " missing")
		if _, err := os.Stat(path); err == nil {
			marker = pterm.Green(sym.OK + " loaded")
		}
		fmt.Fprintf(out, "  [FILE]     %s %s\n", path, marker)
	}

	var envs []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "STACKGRID_") {
			envs = append(envs, kv)
		}
	}
	if len(envs) == 0 {
		fmt.Fprintln(out, "  [ENV]      no STACKGRID_* variables set")
	}
	for _, kv := range envs {
		fmt.Fprintf(out, "  [ENV]      %s\n", kv)
	}
	return nil
}

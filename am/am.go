// Package am holds stackgrid configuration ("I am"): which signature to
// read, how the grid is sized, where output goes and palette overrides.
//
// Sources are merged with viper, lowest precedence first: built-in
// defaults, /etc/stackgrid/am.toml, ~/.stackgrid/am.toml, the nearest
// am.toml found walking up from the working directory, and STACKGRID_*
// environment variables.
package am

// Config represents the stackgrid configuration
type Config struct {
	Instance InstanceConfig `mapstructure:"instance" json:"instance" toml:"instance" yaml:"instance"`
	Extract  ExtractConfig  `mapstructure:"extract" json:"extract" toml:"extract" yaml:"extract"`
	Grid     GridConfig     `mapstructure:"grid" json:"grid" toml:"grid" yaml:"grid"`
	Render   RenderConfig   `mapstructure:"render" json:"render" toml:"render" yaml:"render"`
	Palette  PaletteConfig  `mapstructure:"palette" json:"palette" toml:"palette" yaml:"palette"`
	Log      LogConfig      `mapstructure:"log" json:"log" toml:"log" yaml:"log"`
	Watch    WatchConfig    `mapstructure:"watch" json:"watch" toml:"watch" yaml:"watch"`
}

// InstanceConfig selects what is read from an instance file
type InstanceConfig struct {
	Signature string `mapstructure:"signature" json:"signature" toml:"signature" yaml:"signature"` // Signature whose atoms are stacks (default: TechnologyStack)
}

// ExtractConfig controls field resolution
type ExtractConfig struct {
	// Strict turns field failures into stack failures instead of degrading to "none"
	Strict bool `mapstructure:"strict" json:"strict" toml:"strict" yaml:"strict"`
}

// GridConfig sizes the render grid. Rows are derived from the number of stacks.
type GridConfig struct {
	LocationX  int `mapstructure:"location_x" json:"location_x" toml:"location_x" yaml:"location_x"`
	LocationY  int `mapstructure:"location_y" json:"location_y" toml:"location_y" yaml:"location_y"`
	CellWidth  int `mapstructure:"cell_width" json:"cell_width" toml:"cell_width" yaml:"cell_width"`
	CellHeight int `mapstructure:"cell_height" json:"cell_height" toml:"cell_height" yaml:"cell_height"`
	Columns    int `mapstructure:"columns" json:"columns" toml:"columns" yaml:"columns"` // Component + technology + qualities (default: 7)
}

// RenderConfig selects the output surface
type RenderConfig struct {
	Format string `mapstructure:"format" json:"format" toml:"format" yaml:"format"` // svg, json or terminal
	Output string `mapstructure:"output" json:"output" toml:"output" yaml:"output"` // File path; empty writes to stdout
}

// PaletteConfig overrides display colors. Keys are matched case-insensitively
// because viper lowercases map keys.
type PaletteConfig struct {
	Tech    map[string]string `mapstructure:"tech" json:"tech,omitempty" toml:"tech,omitempty" yaml:"tech,omitempty"`
	Quality map[string]string `mapstructure:"quality" json:"quality,omitempty" toml:"quality,omitempty" yaml:"quality,omitempty"`
}

// LogConfig configures log output
type LogConfig struct {
	Theme string `mapstructure:"theme" json:"theme" toml:"theme" yaml:"theme"` // everforest or gruvbox
	JSON  bool   `mapstructure:"json" json:"json" toml:"json" yaml:"json"`
}

// WatchConfig configures `stackgrid watch`
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" json:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms"`
}

// Output formats accepted by render.format
const (
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatTerminal = "terminal"
)

// DefaultDirPermissions is used when creating ~/.stackgrid
const DefaultDirPermissions = 0o755

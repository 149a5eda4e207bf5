package am

import (
	"github.com/spf13/viper"
)

// Default values, also used by tests
const (
	DefaultSignature  = "TechnologyStack"
	DefaultColumns    = 7
	DefaultCellWidth  = 160
	DefaultCellHeight = 40
	DefaultLocation   = 10
	DefaultDebounceMS = 300
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("instance.signature", DefaultSignature)

	v.SetDefault("extract.strict", false)

	v.SetDefault("grid.location_x", DefaultLocation)
	v.SetDefault("grid.location_y", DefaultLocation)
	v.SetDefault("grid.cell_width", DefaultCellWidth)
	v.SetDefault("grid.cell_height", DefaultCellHeight)
	v.SetDefault("grid.columns", DefaultColumns)

	v.SetDefault("render.format", FormatSVG)
	v.SetDefault("render.output", "")

	v.SetDefault("log.theme", "everforest")
	v.SetDefault("log.json", false)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
}

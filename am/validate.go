package am

import (
	"sort"

	"github.com/teranos/stackgrid/errors"
	"github.com/teranos/stackgrid/palette"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Instance.Signature == "" {
		return errors.WithHint(errors.New("instance.signature cannot be empty"),
			"omit the key to use "+DefaultSignature)
	}

	if c.Grid.CellWidth <= 0 {
		return errors.Newf("grid.cell_width must be > 0, got %d", c.Grid.CellWidth)
	}
	if c.Grid.CellHeight <= 0 {
		return errors.Newf("grid.cell_height must be > 0, got %d", c.Grid.CellHeight)
	}
	if c.Grid.LocationX < 0 || c.Grid.LocationY < 0 {
		return errors.Newf("grid location must be >= 0, got (%d, %d)", c.Grid.LocationX, c.Grid.LocationY)
	}
	// Component, technology and at least one quality column
	if c.Grid.Columns < 3 {
		return errors.Newf("grid.columns must be >= 3, got %d", c.Grid.Columns)
	}

	switch c.Render.Format {
	case FormatSVG, FormatJSON, FormatTerminal:
	default:
		return errors.WithHintf(
			errors.Wrapf(errors.ErrUnsupportedFormat, "render.format %q", c.Render.Format),
			"supported formats: %s, %s, %s", FormatSVG, FormatJSON, FormatTerminal)
	}

	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	if err := validateColors("palette.tech", c.Palette.Tech); err != nil {
		return err
	}
	return validateColors("palette.quality", c.Palette.Quality)
}

// validateColors checks overrides in key order so the reported error is stable
func validateColors(prefix string, colors map[string]string) error {
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := palette.ValidColor(colors[k]); err != nil {
			return errors.Wrapf(err, "%s.%s", prefix, k)
		}
	}
	return nil
}

// Package palette maps technology and quality names to display colors.
//
// The default tables are fixed; a Palette layers configured overrides on
// top of them. Lookups are pure and never fail: unknown names resolve to
// Fallback.
package palette

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/teranos/stackgrid/errors"
)

// Fallback is the neutral gray used for names missing from a table
const Fallback = "#888888"

// Fixed colors for cells that are not looked up by name
const (
	TextOnFill = "white"
	ErrorText  = "red"
)

var defaultTech = map[string]string{
	"NextJS":        "#000000",
	"ReactJS":       "#61DAFB",
	"Vite":          "#646CFF",
	"Angular":       "#DD0031",
	"SvelteKit":     "#FF3E00",
	"VueJS":         "#4FC08D",
	"NodeBackend":   "#339933",
	"PythonBackend": "#3776AB",
	"JavaBackend":   "#007396",
	"GoBackend":     "#00ADD8",
	"RubyBackend":   "#CC342D",
	"Postgres":      "#336791",
	"SQLDatabase":   "#4479A1",
	"MongoDB":       "#47A248",
	"Redis":         "#DC382D",
	"Firebase":      "#FFCA28",
	"PrismaORM":     "#2D3748",
	"DrizzleORM":    "#8E44AD",
	"OAuth":         "#EB5424",
	"JWTAuth":       "#000000",
	"FirebaseAuth":  "#FFCA28",
	"Auth0":         "#EB5424",
	"ClerkAuth":     "#6C47FF",
}

var defaultQuality = map[string]string{
	"Scalability":     "#3498db",
	"Speed":           "#e74c3c",
	"Reliability":     "#2ecc71",
	"Maintainability": "#9b59b6",
	"Security":        "#f39c12",
	"DevExperience":   "#1abc9c",
	"CostEfficiency":  "#34495e",
	"Pedagogy":        "#d35400",
}

// Palette holds the technology and quality color tables. The zero value is
// not usable; use New or Default.
type Palette struct {
	tech    map[string]string
	quality map[string]string
}

// defaultPalette backs the package-level lookups
var defaultPalette = New(nil, nil)

// Default returns the palette with no overrides
func Default() *Palette {
	return defaultPalette
}

// New builds a palette from the default tables plus overrides. Override keys
// replace defaults case-insensitively; callers validate colors beforehand
// (see ValidColor).
func New(techOverrides, qualityOverrides map[string]string) *Palette {
	return &Palette{
		tech:    merge(defaultTech, techOverrides),
		quality: merge(defaultQuality, qualityOverrides),
	}
}

// merge copies base and applies overrides; an override whose key matches a
// base key ignoring case takes that key's exact spelling.
func merge(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	byLower := make(map[string]string, len(base))
	for k, v := range base {
		out[k] = v
		byLower[strings.ToLower(k)] = k
	}
	for k, v := range overrides {
		if canonical, ok := byLower[strings.ToLower(k)]; ok {
			out[canonical] = v
			continue
		}
		out[k] = v
	}
	return out
}

// TechColor returns the display color for a technology name
func (p *Palette) TechColor(name string) string {
	return lookup(p.tech, name)
}

// QualityColor returns the display color for a quality attribute name
func (p *Palette) QualityColor(name string) string {
	return lookup(p.quality, name)
}

func lookup(table map[string]string, name string) string {
	if c, ok := table[name]; ok {
		return c
	}
	// Override keys arrive lowercased from viper
	if c, ok := table[strings.ToLower(name)]; ok {
		return c
	}
	return Fallback
}

// TechColor looks up a technology in the default palette
func TechColor(name string) string {
	return defaultPalette.TechColor(name)
}

// QualityColor looks up a quality in the default palette
func QualityColor(name string) string {
	return defaultPalette.QualityColor(name)
}

// ValidColor reports whether s is a #rgb or #rrggbb hex color
func ValidColor(s string) error {
	if _, err := colorful.Hex(s); err != nil {
		return errors.WithHint(
			errors.NewInvalidRequestError("color %q is not a hex color", s),
			"use #rgb or #rrggbb, e.g. #61DAFB")
	}
	return nil
}

// RGB returns the 0-255 channels of a hex color, or the fallback gray when s
// is not a hex color (named colors such as "white" included).
func RGB(s string) (r, g, b uint8) {
	c, err := colorful.Hex(s)
	if err != nil {
		switch strings.ToLower(s) {
		case TextOnFill:
			return 255, 255, 255
		case ErrorText:
			return 255, 0, 0
		}
		c, _ = colorful.Hex(Fallback)
	}
	return c.RGB255()
}
